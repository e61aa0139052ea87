package scope_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

func TestContributor_Matches(t *testing.T) {
	type args struct {
		a, b scope.Contributor
	}

	type testCase struct {
		name string
		args args
		want bool
	}

	tests := []testCase{
		{
			name: "Same",
			args: args{a: scope.Contributor{Username: "mihai", Provider: "github"}, b: scope.Contributor{Username: "mihai", Provider: "GitHub"}},
			want: true,
		},
		{
			name: "UsernameCase",
			args: args{a: scope.Contributor{Username: "mihai", Provider: "github"}, b: scope.Contributor{Username: "Mihai", Provider: "github"}},
			want: false,
		},
		{
			name: "UsernamePrefix",
			args: args{a: scope.Contributor{Username: "mihai", Provider: "github"}, b: scope.Contributor{Username: "mihai2", Provider: "github"}},
			want: false,
		},
		{
			name: "OtherProvider",
			args: args{a: scope.Contributor{Username: "mihai", Provider: "github"}, b: scope.Contributor{Username: "mihai", Provider: "gitlab"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.args.a.Matches(tt.args.b))
		})
	}
}

func TestProject_MatchesIgnoresCase(t *testing.T) {
	a := scope.Project{RepoFullName: "Mihai/Repo1", Provider: "GITHUB"}
	b := scope.Project{RepoFullName: "mihai/repo1", Provider: "github"}

	assert.True(t, a.Matches(b))
	assert.Equal(t, "github/Mihai/Repo1", a.String())
}

func TestCheck(t *testing.T) {
	expected := scope.Project{RepoFullName: "mihai/repo1", Provider: "github"}

	require.NoError(t, scope.Check("project", expected, scope.Project{RepoFullName: "MIHAI/repo1", Provider: "github"}))

	err := scope.Check("project", expected, scope.Project{RepoFullName: "mihai/repo2", Provider: "github"})
	require.ErrorIs(t, err, scope.ErrMismatch)

	var mismatch *scope.MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "project", mismatch.Kind)
	assert.Equal(t, "github/mihai/repo1", mismatch.Expected)
	assert.Equal(t, "github/mihai/repo2", mismatch.Actual)
	assert.False(t, errors.Is(err, scope.ErrNotFound))
}

func TestNarrow(t *testing.T) {
	want := scope.Contributor{Username: "mihai", Provider: "github"}

	narrowed, err := scope.Narrow("contributor", nil, want)
	require.NoError(t, err)
	assert.True(t, narrowed)

	current := want
	narrowed, err = scope.Narrow("contributor", &current, want)
	require.NoError(t, err)
	assert.False(t, narrowed)

	other := scope.Contributor{Username: "ana", Provider: "github"}
	_, err = scope.Narrow("contributor", &other, want)
	assert.ErrorIs(t, err, scope.ErrMismatch)
}
