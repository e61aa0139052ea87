package contract_test

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

var mihai = scope.Contributor{Username: "mihai", Provider: "github"}

func projectN(n int) scope.Project {
	return scope.Project{RepoFullName: fmt.Sprintf("mihai/repo%d", n), Provider: "github"}
}

func contractIn(p scope.Project, username, role string) *contract.Contract {
	return &contract.Contract{
		ID: contract.ID{
			RepoFullName:        p.RepoFullName,
			ContributorUsername: username,
			Provider:            p.Provider,
			Role:                role,
		},
		HourlyRate: decimal.NewFromInt(25),
	}
}

func TestContracts_ContributorContractsOfProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)

	items := []*contract.Contract{
		contractIn(projectN(1), "mihai", contract.RoleDev),
		contractIn(projectN(1), "mihai", contract.RoleReviewer),
		contractIn(projectN(1), "mihai", contract.RoleQA),
		contractIn(projectN(2), "mihai", contract.RoleDev),
		contractIn(projectN(3), "mihai", contract.RoleDev),
		contractIn(projectN(4), "mihai", contract.RoleDev),
	}

	contracts := contract.NewContractsFrom(repo, contract.Filter{Contributor: &mihai}, items)

	type testCase struct {
		name    string
		project scope.Project
		want    int
	}

	tests := []testCase{
		{name: "ThreeRoles", project: projectN(1), want: 3},
		{name: "Single", project: projectN(2), want: 1},
		{name: "Unknown", project: projectN(99), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ofProject, err := contracts.OfProject(tt.project)
			require.NoError(t, err)

			got, err := ofProject.Count(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	total, err := contracts.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, total)
}

func TestContracts_NarrowIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	all := contract.NewContracts(repo)

	ofMihai, err := all.OfContributor(mihai)
	require.NoError(t, err)

	again, err := ofMihai.OfContributor(scope.Contributor{Username: "mihai", Provider: "GitHub"})
	require.NoError(t, err)
	assert.Same(t, ofMihai, again)

	ofProject, err := all.OfProject(projectN(1))
	require.NoError(t, err)

	sameProject, err := ofProject.OfProject(projectN(1))
	require.NoError(t, err)
	assert.Same(t, ofProject, sameProject)
}

func TestContracts_NarrowMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	contracts := contract.NewContributorContracts(repo, mihai)

	_, err := contracts.OfContributor(scope.Contributor{Username: "mihai2", Provider: "github"})
	require.Error(t, err)
	assert.ErrorIs(t, err, scope.ErrMismatch)

	var mismatch *scope.MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "contributor", mismatch.Kind)
	assert.Equal(t, "github/mihai", mismatch.Expected)
	assert.Equal(t, "github/mihai2", mismatch.Actual)
}

func TestContracts_LazyViewRequeriesStorage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	p := projectN(1)

	repo.EXPECT().
		ListContracts(gomock.Any(), contract.Filter{Project: &p}).
		DoAndReturn(func(_ context.Context, _ contract.Filter) iter.Seq2[*contract.Contract, error] {
			return scope.Values(
				contractIn(p, "mihai", contract.RoleDev),
				// Storage leaking a foreign row must not reach the caller.
				contractIn(projectN(2), "mihai", contract.RoleDev),
			)
		}).
		Times(2)

	contracts := contract.NewProjectContracts(repo, p)

	for range 2 {
		got, err := scope.Collect(contracts.All(context.Background()))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, p.RepoFullName, got[0].ID.RepoFullName)
	}
}

func TestContracts_Add(t *testing.T) {
	p := projectN(1)

	type args struct {
		id   contract.ID
		rate decimal.Decimal
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *contract.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{id: contractIn(p, "mihai", contract.RoleDev).ID, rate: decimal.NewFromInt(10)},
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().
					AddContract(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, id contract.ID, rate decimal.Decimal) (*contract.Contract, error) {
						return &contract.Contract{ID: id, HourlyRate: rate}, nil
					})
			},
		},
		{
			name:    "OtherProject",
			args:    args{id: contractIn(projectN(2), "mihai", contract.RoleDev).ID, rate: decimal.NewFromInt(10)},
			wantErr: scope.ErrMismatch,
		},
		{
			name:    "EmptyRole",
			args:    args{id: contractIn(p, "mihai", " ").ID, rate: decimal.NewFromInt(10)},
			wantErr: contract.ErrInvalidRole,
		},
		{
			name:    "NegativeRate",
			args:    args{id: contractIn(p, "mihai", contract.RoleDev).ID, rate: decimal.NewFromInt(-1)},
			wantErr: contract.ErrNegativeRate,
		},
		{
			name: "StorageError",
			args: args{id: contractIn(p, "mihai", contract.RoleDev).ID, rate: decimal.NewFromInt(10)},
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().
					AddContract(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("adding contract: db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contract.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			contracts := contract.NewContractsFrom(repo, contract.Filter{Project: &p}, nil)
			got, err := contracts.Add(context.Background(), tt.args.id, tt.args.rate)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				if errors.Is(err, tt.wantErr) {
					return
				}

				assert.EqualError(t, err, tt.wantErr.Error())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.args.id, got.ID)

			n, err := contracts.Count(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}

func TestContracts_UpdateHourlyRateReplacesListedContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	existing := contractIn(projectN(1), "mihai", contract.RoleDev)

	repo.EXPECT().
		UpdateHourlyRate(gomock.Any(), existing.ID, decimal.NewFromInt(40)).
		Return(&contract.Contract{ID: existing.ID, HourlyRate: decimal.NewFromInt(40)}, nil)

	contracts := contract.NewContractsFrom(repo, contract.Filter{Contributor: &mihai}, []*contract.Contract{existing})

	_, err := contracts.UpdateHourlyRate(context.Background(), existing.ID, decimal.NewFromInt(40))
	require.NoError(t, err)

	got, err := contracts.GetByID(context.Background(), existing.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.HourlyRate.Equal(decimal.NewFromInt(40)))
	assert.True(t, existing.HourlyRate.Equal(decimal.NewFromInt(25)))
}

func TestContracts_MarkForRemoval(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	existing := contractIn(projectN(1), "mihai", contract.RoleDev)

	repo.EXPECT().
		MarkForRemoval(gomock.Any(), existing.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, id contract.ID, at time.Time) (*contract.Contract, error) {
			return &contract.Contract{ID: id, HourlyRate: existing.HourlyRate, MarkedForRemoval: &at}, nil
		})

	contracts := contract.NewContractsFrom(repo, contract.Filter{}, []*contract.Contract{existing})

	marked, err := contracts.MarkForRemoval(context.Background(), existing.ID)
	require.NoError(t, err)
	require.NotNil(t, marked.MarkedForRemoval)
	assert.WithinDuration(t, time.Now(), *marked.MarkedForRemoval, time.Minute)
}

func TestContracts_RemoveMissingContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	contracts := contract.NewContractsFrom(repo, contract.Filter{Contributor: &mihai}, []*contract.Contract{
		contractIn(projectN(1), "mihai", contract.RoleDev),
	})

	err := contracts.Remove(context.Background(), contractIn(projectN(1), "mihai", contract.RoleQA).ID)
	assert.ErrorIs(t, err, scope.ErrNotFound)

	err = contracts.Remove(context.Background(), contractIn(projectN(1), "vlad", contract.RoleDev).ID)
	assert.ErrorIs(t, err, scope.ErrMismatch)
}

func TestContracts_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	existing := contractIn(projectN(1), "mihai", contract.RoleDev)

	repo.EXPECT().RemoveContract(gomock.Any(), existing.ID).Return(nil)

	contracts := contract.NewContractsFrom(repo, contract.Filter{Contributor: &mihai}, []*contract.Contract{existing})
	require.NoError(t, contracts.Remove(context.Background(), existing.ID))

	n, err := contracts.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
