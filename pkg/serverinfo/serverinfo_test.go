package serverinfo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Code-Monger/SpellSpinneret/pkg/dictionary"
)

func TestInfoListsLoadedDictionaries(t *testing.T) {
	store := dictionary.NewStore(dictionary.LoaderFunc(func(ctx context.Context, locale string) ([]string, error) {
		return []string{"alpha", "beta"}, nil
	}))
	assert.Contains(t, Info(store), "(none loaded)")

	_, err := store.Load(context.Background(), "en")
	require.NoError(t, err)

	info := Info(store)
	assert.Contains(t, info, "go_version:")
	assert.Contains(t, info, "en: 2 words")
}
