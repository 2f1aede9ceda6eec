package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-blog-server/loader"
	"github.com/jrsteele09/go-blog-server/posts/repofake"
	"github.com/jrsteele09/go-blog-server/session"
	"github.com/jrsteele09/go-blog-server/storage"
	"github.com/jrsteele09/go-blog-server/token"
	"github.com/jrsteele09/go-blog-server/users/repofake"
)

func testRepos() storage.Repos {
	return storage.Repos{
		Users:    fakeuserrepo.NewFakeUserRepo(),
		Profiles: fakeuserrepo.NewFakeProfileRepo(),
		Posts:    fakepostrepo.NewFakePostRepo(),
	}
}

func TestContextBuilder_Middleware(t *testing.T) {
	tokens := token.NewService(token.NewHMACSigner("test-secret"))
	builder := session.NewContextBuilder(tokens, testRepos())

	invoke := func(authHeader string) (*session.Identity, *loader.Loaders) {
		var identity *session.Identity
		var loaders *loader.Loaders

		handler := builder.Middleware(func(w http.ResponseWriter, r *http.Request) {
			identity = session.IdentityFromContext(r.Context())
			loaders = loader.FromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		handler(httptest.NewRecorder(), req)
		return identity, loaders
	}

	t.Run("valid bearer token yields identity", func(t *testing.T) {
		signed, err := tokens.Issue(7, time.Hour)
		require.NoError(t, err)

		identity, loaders := invoke("Bearer " + signed)
		require.NotNil(t, identity)
		require.Equal(t, int64(7), identity.UserID)
		require.NotNil(t, loaders)
	})

	t.Run("missing header is anonymous, not an error", func(t *testing.T) {
		identity, loaders := invoke("")
		require.Nil(t, identity)
		require.NotNil(t, loaders, "anonymous requests still get loaders")
	})

	t.Run("expired token degrades to anonymous", func(t *testing.T) {
		signed, err := tokens.Issue(7, time.Hour)
		require.NoError(t, err)

		token.NowTimeFunc = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { token.NowTimeFunc = time.Now }()

		identity, _ := invoke("Bearer " + signed)
		require.Nil(t, identity)
	})

	t.Run("garbage token degrades to anonymous", func(t *testing.T) {
		identity, _ := invoke("Bearer not-a-token")
		require.Nil(t, identity)
	})

	t.Run("wrong scheme degrades to anonymous", func(t *testing.T) {
		signed, err := tokens.Issue(7, time.Hour)
		require.NoError(t, err)

		identity, _ := invoke("Basic " + signed)
		require.Nil(t, identity)
	})

	t.Run("each request gets a fresh loader bundle", func(t *testing.T) {
		_, first := invoke("")
		_, second := invoke("")
		require.NotSame(t, first, second)
	})
}
