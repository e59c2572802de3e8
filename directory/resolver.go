// Package directory resolves role expressions into concrete users so the
// routing assignment helpers can work against a directory assembled from
// several systems.
package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/kart-io/caseflow/routing"
)

// Provider defines the interface for user directory providers
type Provider interface {
	ResolveUsers(ctx context.Context, expression string) ([]routing.User, error)
	SupportedExpressions() []string
}

// Resolver resolves directory expressions into concrete users
type Resolver struct {
	providers map[string]Provider
}

// NewResolver creates a new directory resolver
func NewResolver() *Resolver {
	return &Resolver{
		providers: make(map[string]Provider),
	}
}

// RegisterProvider registers a directory provider
func (r *Resolver) RegisterProvider(name string, provider Provider) {
	r.providers[name] = provider
}

// ResolveUsers resolves directory expressions into concrete users,
// deduplicated by user ID
func (r *Resolver) ResolveUsers(ctx context.Context, expressions []string) ([]routing.User, error) {
	var allUsers []routing.User

	for _, expression := range expressions {
		users, err := r.resolveExpression(ctx, expression)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve expression '%s': %w", expression, err)
		}
		allUsers = append(allUsers, users...)
	}

	return r.deduplicateUsers(allUsers), nil
}

// resolveExpression resolves a single expression of the form
// provider:expression
func (r *Resolver) resolveExpression(ctx context.Context, expression string) ([]routing.User, error) {
	parts := strings.SplitN(expression, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid expression format, expected 'provider:expression', got: %s", expression)
	}

	providerName := parts[0]
	providerExpression := parts[1]

	provider, exists := r.providers[providerName]
	if !exists {
		return nil, fmt.Errorf("unknown provider: %s", providerName)
	}

	return provider.ResolveUsers(ctx, providerExpression)
}

// deduplicateUsers removes duplicate users, keeping the first occurrence
func (r *Resolver) deduplicateUsers(users []routing.User) []routing.User {
	seen := make(map[string]bool)
	var unique []routing.User

	for _, user := range users {
		if !seen[user.ID] {
			seen[user.ID] = true
			unique = append(unique, user)
		}
	}

	return unique
}

// StaticProvider serves users from in-memory role groups
type StaticProvider struct {
	groups map[string][]routing.User
}

// NewStaticProvider creates a new static provider
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		groups: make(map[string][]routing.User),
	}
}

// AddRoleGroup registers the users holding a role
func (p *StaticProvider) AddRoleGroup(role string, users []routing.User) {
	p.groups[role] = users
}

// ResolveUsers resolves users from static configuration
func (p *StaticProvider) ResolveUsers(ctx context.Context, expression string) ([]routing.User, error) {
	users, exists := p.groups[expression]
	if !exists {
		return nil, fmt.Errorf("role group not found: %s", expression)
	}

	result := make([]routing.User, len(users))
	copy(result, users)
	return result, nil
}

// SupportedExpressions returns the registered role groups
func (p *StaticProvider) SupportedExpressions() []string {
	expressions := make([]string, 0, len(p.groups))
	for role := range p.groups {
		expressions = append(expressions, role)
	}
	return expressions
}
