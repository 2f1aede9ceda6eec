package graph

import (
	"context"

	"github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/users"
)

// CredentialsInput mirrors the CredentialsInput schema type
type CredentialsInput struct {
	Email    string
	Password string
}

type SignupArgs struct {
	Credentials CredentialsInput
	Name        string
	Bio         string
}

// Signup registers a new user with a profile and signs them in immediately.
// Validation failures come back as a single userErrors entry; the check
// order (email, password, name/bio) is part of the API contract.
func (r *Resolver) Signup(ctx context.Context, args SignupArgs) (*AuthPayloadResolver, error) {
	credentials := users.Credentials{
		Email:    args.Credentials.Email,
		Password: args.Credentials.Password,
	}

	if verr := users.ValidateSignup(credentials, args.Name, args.Bio); verr != nil {
		return authFailure(verr.Message), nil
	}

	passwordHash, err := users.HashPassword(credentials.Password, r.security.GetBcryptCost())
	if err != nil {
		return nil, errors.Wrapf(err, "Resolver.Signup hash password")
	}

	user := &users.User{
		Email:        credentials.Email,
		Name:         args.Name,
		PasswordHash: passwordHash,
	}
	if err := r.repos.Users.Create(ctx, user); err != nil {
		return nil, errors.Wrapf(err, "Resolver.Signup create user")
	}

	profile := &users.Profile{
		Bio:    args.Bio,
		UserID: user.ID,
	}
	if err := r.repos.Profiles.Create(ctx, profile); err != nil {
		return nil, errors.Wrapf(err, "Resolver.Signup create profile")
	}

	return r.issueToken(user.ID)
}

type SigninArgs struct {
	Credentials CredentialsInput
}

// Signin verifies credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (r *Resolver) Signin(ctx context.Context, args SigninArgs) (*AuthPayloadResolver, error) {
	user, err := r.repos.Users.GetByEmail(ctx, args.Credentials.Email)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return authFailure("Invalid Credentials"), nil
		}
		return nil, errors.Wrapf(err, "Resolver.Signin")
	}

	if !users.CheckPasswordHash(args.Credentials.Password, user.PasswordHash) {
		return authFailure("Invalid Credentials"), nil
	}

	return r.issueToken(user.ID)
}

func (r *Resolver) issueToken(userID int64) (*AuthPayloadResolver, error) {
	signedToken, err := r.tokens.Issue(userID, r.security.GetTokenTTL())
	if err != nil {
		return nil, errors.Wrapf(err, "issue token for user %d", userID)
	}
	return authSuccess(signedToken), nil
}
