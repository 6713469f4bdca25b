package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/philly/postboard/internal/platform/identity"
	postsapp "github.com/philly/postboard/internal/posts/application"
	usersapp "github.com/philly/postboard/internal/users/application"
)

// DemoSeeder creates demo authors and their posts through the services, so
// seeded data passes the same validation and sanitising as API traffic.
type DemoSeeder struct {
	users   *usersapp.UserService
	posts   *postsapp.PostsService
	authors []DemoAuthor
	entries []DemoPost
}

// NewDemoSeeder creates a seeder for DefaultAuthors and DefaultPosts
func NewDemoSeeder(users *usersapp.UserService, posts *postsapp.PostsService) *DemoSeeder {
	return &DemoSeeder{
		users:   users,
		posts:   posts,
		authors: DefaultAuthors,
		entries: DefaultPosts,
	}
}

// Name returns the name of this seeder
func (s *DemoSeeder) Name() string {
	return "DemoSeeder"
}

// Seed creates missing authors, then any post whose title the author does not
// already have
func (s *DemoSeeder) Seed(ctx context.Context) error {
	ids := make(map[string]identity.UserID, len(s.authors))
	for _, author := range s.authors {
		id, err := s.ensureAuthor(ctx, author)
		if err != nil {
			return fmt.Errorf("failed to seed author %s: %w", author.Username, err)
		}
		ids[author.Username] = id
	}

	existing, err := s.posts.ListPosts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, post := range existing {
		seen[post.AuthorID.String()+"/"+post.Title] = true
	}

	for _, entry := range s.entries {
		author, ok := ids[entry.Author]
		if !ok {
			return fmt.Errorf("post %q references unknown author %s", entry.Title, entry.Author)
		}
		if seen[author.String()+"/"+entry.Title] {
			continue
		}
		if _, err := s.posts.CreatePost(ctx, author, postsapp.CreatePostParams{
			Title:   entry.Title,
			Content: entry.Content,
		}); err != nil {
			return fmt.Errorf("failed to seed post %q: %w", entry.Title, err)
		}
	}

	return nil
}

func (s *DemoSeeder) ensureAuthor(ctx context.Context, author DemoAuthor) (identity.UserID, error) {
	user, err := s.users.GetUserByExternalID(ctx, author.ExternalID)
	if err == nil {
		return user.Identity(), nil
	}
	if !errors.Is(err, usersapp.ErrUserNotFound) {
		return identity.Anonymous, err
	}

	user, err = s.users.CreateUser(ctx, usersapp.CreateUserParams{
		ExternalID:  author.ExternalID,
		Email:       author.Email,
		Username:    author.Username,
		DisplayName: author.DisplayName,
	})
	if err != nil {
		return identity.Anonymous, err
	}
	return user.Identity(), nil
}
