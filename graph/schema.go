package graph

// Schema is the GraphQL schema served at /graphql. Mutation payloads follow
// the userErrors envelope: every expected failure surfaces as a userErrors
// entry with a null entity, never as a transport-level error.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	type Query {
		me: User
		posts: [Post!]!
		profile(userId: ID!): Profile
	}

	type Mutation {
		signup(credentials: CredentialsInput!, name: String!, bio: String!): AuthPayload!
		signin(credentials: CredentialsInput!): AuthPayload!

		postCreate(post: PostInput!): PostPayload!
		postUpdate(postId: ID!, post: PostInput!): PostPayload!
		postDelete(postId: ID!): PostPayload!
		postPublish(postId: ID!): PostPayload!
		postUnpublish(postId: ID!): PostPayload!
	}

	type User {
		id: ID!
		email: String!
		name: String!
		posts: [Post!]!
		profile: Profile!
	}

	type Post {
		id: ID!
		title: String!
		content: String!
		published: Boolean!
		createdAt: String!
		user: User!
	}

	type Profile {
		id: ID!
		bio: String!
		user: User!
	}

	type UserError {
		message: String!
	}

	type AuthPayload {
		userErrors: [UserError!]!
		token: String
	}

	type PostPayload {
		userErrors: [UserError!]!
		post: Post
	}

	input CredentialsInput {
		email: String!
		password: String!
	}

	input PostInput {
		title: String
		content: String
	}
`
