// Package graphql exposes the CRM services as a single GraphQL schema served
// over HTTP at POST /graphql.
//
// Mutations report rejected input inside their payload (success, message);
// only infrastructure failures surface as GraphQL errors.
package graphql
