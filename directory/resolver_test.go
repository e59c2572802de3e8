package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/caseflow/routing"
)

func TestResolverStaticProvider(t *testing.T) {
	static := NewStaticProvider()
	static.AddRoleGroup("support", []routing.User{
		{ID: "u1", Name: "Ada", Role: "support", Active: true},
		{ID: "u2", Name: "Boris", Role: "support", Active: true},
	})
	static.AddRoleGroup("finance", []routing.User{
		{ID: "u3", Name: "Carol", Role: "finance", Active: true},
	})

	r := NewResolver()
	r.RegisterProvider("role", static)

	users, err := r.ResolveUsers(context.Background(), []string{"role:support", "role:finance"})
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestResolverDeduplicatesByID(t *testing.T) {
	static := NewStaticProvider()
	shared := routing.User{ID: "u1", Name: "Ada", Role: "support", Active: true}
	static.AddRoleGroup("support", []routing.User{shared})
	static.AddRoleGroup("escalations", []routing.User{shared, {ID: "u2", Name: "Boris", Active: true}})

	r := NewResolver()
	r.RegisterProvider("role", static)

	users, err := r.ResolveUsers(context.Background(), []string{"role:support", "role:escalations"})
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestResolverErrors(t *testing.T) {
	r := NewResolver()
	r.RegisterProvider("role", NewStaticProvider())

	_, err := r.ResolveUsers(context.Background(), []string{"missing-colon"})
	assert.Error(t, err)

	_, err = r.ResolveUsers(context.Background(), []string{"nope:whatever"})
	assert.Error(t, err)

	_, err = r.ResolveUsers(context.Background(), []string{"role:unknown-group"})
	assert.Error(t, err)
}
