package seeder

// DemoAuthor is a profile created for local development
type DemoAuthor struct {
	ExternalID  string
	Email       string
	Username    string
	DisplayName string
}

// DemoPost is a post created for a DemoAuthor, keyed by username
type DemoPost struct {
	Author  string
	Title   string
	Content string
}

// DefaultAuthors are the profiles seeded by DemoSeeder. The external IDs
// match the subjects of the development tokens.
var DefaultAuthors = []DemoAuthor{
	{ExternalID: "dev|alice", Email: "alice@example.com", Username: "alice", DisplayName: "Alice"},
	{ExternalID: "dev|bob", Email: "bob@example.com", Username: "bob", DisplayName: "Bob"},
}

// DefaultPosts are the posts seeded by DemoSeeder
var DefaultPosts = []DemoPost{
	{
		Author:  "alice",
		Title:   "Welcome to the board",
		Content: "<p>Posts can be read by anyone and changed only by their author.</p>",
	},
	{
		Author:  "alice",
		Title:   "Formatting",
		Content: "<p>Basic <strong>HTML</strong> is kept. Scripts are not.</p>",
	},
	{
		Author:  "bob",
		Title:   "Hello from Bob",
		Content: "<p>Try editing this post as alice.</p>",
	},
}
