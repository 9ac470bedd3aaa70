package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	clierrors "github.com/beeftornado/gitchangelog/internal/errors"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "gitchangelog [path]", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
	assert.NotNil(t, rootCmd.RunE)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"config", "debug", "plain"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %s should exist", name)
	}
}

func TestRootCmd_GenerateFlags(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"output", "engine", "watch"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "flag %s should exist", name)
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	t.Parallel()

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["init"], "should have init subcommand")
	assert.True(t, names["version"], "should have version subcommand")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil is success": {
			err:  nil,
			want: 0,
		},
		"plain error is generic failure": {
			err:  assert.AnError,
			want: 1,
		},
		"argument error": {
			err:  clierrors.NewArgumentError("bad flag"),
			want: 3,
		},
		"repository error": {
			err:  clierrors.NewRepositoryError("not a repo"),
			want: 4,
		},
		"configuration error": {
			err:  clierrors.NewConfigError("bad pattern"),
			want: 1,
		},
		"generation error": {
			err:  clierrors.NewGenerationError("render failed"),
			want: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
