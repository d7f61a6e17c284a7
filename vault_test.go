package promptvault_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skosovsky/promptvault"
	"github.com/skosovsky/promptvault/localvault"
)

func TestValidateName(t *testing.T) {
	t.Parallel()
	for _, ok := range []string{"Greeting", "support-agent", "a.b", "v1_2", "with space"} {
		require.NoError(t, promptvault.ValidateName(ok), ok)
	}
	for _, bad := range []string{"", "a/b", `a\b`, "..", ".hidden", "c:", " lead", "trail ", "nul\x00"} {
		require.ErrorIs(t, promptvault.ValidateName(bad), promptvault.ErrInvalidName, "%q", bad)
	}
}

func TestTargetName(t *testing.T) {
	t.Parallel()
	name, err := promptvault.TargetName(newPersona())
	require.NoError(t, err)
	assert.Equal(t, "Persona", name)

	name, err = promptvault.TargetName(newPersona(), promptvault.WithFolder("custom"))
	require.NoError(t, err)
	assert.Equal(t, "custom", name)

	_, err = promptvault.TargetName(promptvault.NewTemplate("x"), promptvault.WithFolder("../up"))
	require.ErrorIs(t, err, promptvault.ErrInvalidName)

	_, err = promptvault.TargetName(nil)
	require.ErrorIs(t, err, promptvault.ErrInvalidVariant)
	_, err = promptvault.TargetName((*Persona)(nil), promptvault.WithFolder("custom"))
	require.ErrorIs(t, err, promptvault.ErrInvalidVariant)
}

func TestHelpers_SaveGetList(t *testing.T) {
	t.Parallel()
	reg := promptvault.NewRegistry(promptvault.WithLogger(zerolog.Nop()))
	promptvault.RegisterType(reg, newPersona)
	vault, err := localvault.New(t.TempDir(), localvault.WithRegistry(reg))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, promptvault.Save(ctx, vault, newPersona()))
	require.NoError(t, promptvault.Save(ctx, vault, promptvault.NewTemplate("plain"), promptvault.WithFolder("plain")))

	v, err := promptvault.Get(ctx, vault, "Persona", "1.0")
	require.NoError(t, err)
	assert.IsType(t, &Persona{}, v)

	p, err := promptvault.GetAs[*Persona](ctx, vault, "Persona", "")
	require.NoError(t, err)
	assert.Equal(t, "assistant", p.Role)

	_, err = promptvault.GetAs[*Persona](ctx, vault, "plain", "")
	require.ErrorIs(t, err, promptvault.ErrInvalidVariant)

	_, err = promptvault.GetAs[*Persona](ctx, vault, "absent", "")
	require.ErrorIs(t, err, promptvault.ErrNotFound)

	entries, err := promptvault.List(ctx, vault)
	require.NoError(t, err)
	assert.ElementsMatch(t, []promptvault.Entry{
		{Name: "Persona", Versions: []string{"1.0"}},
		{Name: "plain", Versions: []string{"1.0"}},
	}, entries)
}
