package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"seedstrip.dev/pkg/seedstrip/internal/domain"
	domainmocks "seedstrip.dev/pkg/seedstrip/internal/domain/mocks"
	m "seedstrip.dev/pkg/seedstrip/internal/model"
)

func TestRunCmd_DefaultArgs(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return len(args.Roots) == 1 &&
			args.Roots[0] == m.Path("./db/seeds") &&
			args.Reports == m.Path(".seedstrip-reports") &&
			!args.DryRun &&
			len(args.KnownIDs) == 0 &&
			len(args.Globs) == 1 &&
			args.Globs[0] == "*questions*.sql" &&
			args.Target == (domain.Target{Schema: "public", Table: "questions", IDColumn: "id"})
	})).Return(nil)

	cmd.SetArgs([]string{"run", "./db/seeds"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestRunCmd_MultiplePaths(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return len(args.Roots) == 3 &&
			args.Roots[0] == m.Path("./db/seeds") &&
			args.Roots[1] == m.Path("./migrations") &&
			args.Roots[2] == m.Path("./fixtures")
	})).Return(nil)

	cmd.SetArgs([]string{"run", "./db/seeds", "./migrations", "./fixtures"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestRunCmd_WithExcludePatterns(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return len(args.Exclude) == 2 &&
			args.Exclude[0] == "^archive/" &&
			args.Exclude[1] == "\\.bak$"
	})).Return(nil)

	cmd.SetArgs([]string{"run", "-x", "^archive/", "-x", "\\.bak$", "."})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestRunCmd_CustomTarget(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Target == (domain.Target{Schema: "app", Table: "users", IDColumn: "user_id"})
	})).Return(nil)

	cmd.SetArgs([]string{"run", "--schema", "app", "--table", "users", "--id-column", "user_id", "."})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestRunCmd_DryRunFlag(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.DryRun
	})).Return(nil)

	cmd.SetArgs([]string{"run", "-n", "."})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestNewRunCmd(t *testing.T) {
	cmd := newRunCmd()

	assert.Equal(t, "run [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Equal(t, runLongDescription, cmd.Long)

	for _, name := range []string{dryRunFlagName, schemaFlagName, tableFlagName, idColumnFlagName} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestPatternGlobs(t *testing.T) {
	restoreGlobs := viper.GetStringSlice(globsConfigKey)
	restoreKeyword := viper.GetString(keywordConfigKey)
	t.Cleanup(func() {
		viper.Set(globsConfigKey, restoreGlobs)
		viper.Set(keywordConfigKey, restoreKeyword)
	})

	tests := []struct {
		name    string
		globs   []string
		keyword string
		want    []string
	}{
		{"derived from default keyword", []string{}, "questions", []string{"*questions*.sql"}},
		{"derived from custom keyword", []string{}, "answers", []string{"*answers*.sql"}},
		{"empty keyword falls back to all sql", []string{}, "  ", []string{"*.sql"}},
		{"explicit globs win", []string{"seed_*.sql", "*.seed"}, "questions", []string{"seed_*.sql", "*.seed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Set(globsConfigKey, tt.globs)
			viper.Set(keywordConfigKey, tt.keyword)

			assert.Equal(t, tt.want, patternGlobs())
		})
	}
}
