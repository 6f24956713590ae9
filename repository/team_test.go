package repository

import (
	"context"
	"testing"

	"roster/models"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestTeamCreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, teams, _ := newRepos(t)

	created, err := teams.Create(ctx, models.NewTeam{Name: "platform"})
	require.NoError(t, err)
	require.Equal(t, "platform", created.Name)
	require.NotZero(t, created.ID)
	require.NotNil(t, created.Members)
	require.Empty(t, created.Members)

	fetched, err := teams.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, fetched)
}

func TestTeamUpdate(t *testing.T) {
	ctx := context.Background()
	persons, teams, _ := newRepos(t)

	team, err := teams.Create(ctx, models.NewTeam{Name: "platform"})
	require.NoError(t, err)
	p, err := persons.Create(ctx, models.NewPerson{FirstName: "Ann", LastName: "X", Email: "ann@x.com"})
	require.NoError(t, err)
	_, err = teams.AddMember(ctx, team.ID, p.ID)
	require.NoError(t, err)

	updated, err := teams.Update(ctx, team.ID, models.NewTeam{Name: "infra"})
	require.NoError(t, err)
	require.Equal(t, "infra", updated.Name)
	require.Len(t, updated.Members, 1)

	fetched, err := teams.Get(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, updated, fetched)
}

func TestTeamDeleteDetachesMembers(t *testing.T) {
	ctx := context.Background()
	persons, teams, _ := newRepos(t)

	team, err := teams.Create(ctx, models.NewTeam{Name: "platform"})
	require.NoError(t, err)
	p, err := persons.Create(ctx, models.NewPerson{FirstName: "Ann", LastName: "X", Email: "ann@x.com"})
	require.NoError(t, err)
	_, err = teams.AddMember(ctx, team.ID, p.ID)
	require.NoError(t, err)

	require.NoError(t, teams.Delete(ctx, team.ID))

	_, err = teams.Get(ctx, team.ID)
	require.ErrorIs(t, err, models.ErrNotFound)

	orphan, err := persons.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Nil(t, orphan.Team)
}

func TestTeamMissingIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	persons, teams, _ := newRepos(t)

	_, err := teams.Get(ctx, 9)
	require.ErrorIs(t, err, models.ErrNotFound)
	require.EqualError(t, err, "team with id 9 not found")

	_, err = teams.Update(ctx, 9, models.NewTeam{Name: "x"})
	require.ErrorIs(t, err, models.ErrNotFound)
	require.ErrorIs(t, teams.Delete(ctx, 9), models.ErrNotFound)

	p, err := persons.Create(ctx, models.NewPerson{FirstName: "Ann", LastName: "X", Email: "ann@x.com"})
	require.NoError(t, err)

	_, err = teams.AddMember(ctx, 9, p.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
	_, err = teams.RemoveMember(ctx, 9, p.ID)
	require.ErrorIs(t, err, models.ErrNotFound)

	team, err := teams.Create(ctx, models.NewTeam{Name: "platform"})
	require.NoError(t, err)

	_, err = teams.AddMember(ctx, team.ID, 77)
	require.ErrorIs(t, err, models.ErrNotFound)
	require.EqualError(t, err, "person with id 77 not found")
	_, err = teams.RemoveMember(ctx, team.ID, 77)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestTeamListEmptyIsNotFound(t *testing.T) {
	ctx := context.Background()
	_, teams, _ := newRepos(t)

	_, err := teams.List(ctx)
	require.ErrorIs(t, err, models.ErrNotFound)
	require.EqualError(t, err, "teams not found")

	first, err := teams.Create(ctx, models.NewTeam{Name: "a"})
	require.NoError(t, err)
	second, err := teams.Create(ctx, models.NewTeam{Name: "b"})
	require.NoError(t, err)

	list, err := teams.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.TeamDTO{first, second}, list)
}

func TestTeamAddMemberIsIdempotent(t *testing.T) {
	ctx := context.Background()
	persons, teams, _ := newRepos(t)

	team, err := teams.Create(ctx, models.NewTeam{Name: "platform"})
	require.NoError(t, err)
	p, err := persons.Create(ctx, models.NewPerson{FirstName: "Ann", LastName: "X", Email: "ann@x.com"})
	require.NoError(t, err)

	once, err := teams.AddMember(ctx, team.ID, p.ID)
	require.NoError(t, err)
	require.Equal(t, []models.Member{{ID: p.ID, FirstName: "Ann", LastName: "X", Email: "ann@x.com"}}, once.Members)

	twice, err := teams.AddMember(ctx, team.ID, p.ID)
	require.NoError(t, err)
	require.Len(t, twice.Members, len(once.Members))
	require.Equal(t, once, twice)
}

func TestTeamAddMemberMovesFromOtherTeam(t *testing.T) {
	ctx := context.Background()
	persons, teams, _ := newRepos(t)

	a, err := teams.Create(ctx, models.NewTeam{Name: "a"})
	require.NoError(t, err)
	b, err := teams.Create(ctx, models.NewTeam{Name: "b"})
	require.NoError(t, err)
	p, err := persons.Create(ctx, models.NewPerson{FirstName: "Ann", LastName: "X", Email: "ann@x.com"})
	require.NoError(t, err)

	_, err = teams.AddMember(ctx, a.ID, p.ID)
	require.NoError(t, err)
	moved, err := teams.AddMember(ctx, b.ID, p.ID)
	require.NoError(t, err)
	require.Len(t, moved.Members, 1)

	left, err := teams.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Empty(t, left.Members)
}

func TestTeamRemoveMember(t *testing.T) {
	ctx := context.Background()
	persons, teams, _ := newRepos(t)

	team, err := teams.Create(ctx, models.NewTeam{Name: "platform"})
	require.NoError(t, err)
	other, err := teams.Create(ctx, models.NewTeam{Name: "other"})
	require.NoError(t, err)
	p, err := persons.Create(ctx, models.NewPerson{FirstName: "Ann", LastName: "X", Email: "ann@x.com"})
	require.NoError(t, err)

	_, err = teams.RemoveMember(ctx, team.ID, p.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
	require.EqualError(t, err, "member with id 1 not found")

	_, err = teams.AddMember(ctx, other.ID, p.ID)
	require.NoError(t, err)
	_, err = teams.RemoveMember(ctx, team.ID, p.ID)
	require.ErrorIs(t, err, models.ErrNotFound, "member of another team")

	_, err = teams.AddMember(ctx, team.ID, p.ID)
	require.NoError(t, err)
	removed, err := teams.RemoveMember(ctx, team.ID, p.ID)
	require.NoError(t, err)
	require.Empty(t, removed.Members)

	_, err = teams.RemoveMember(ctx, team.ID, p.ID)
	require.ErrorIs(t, err, models.ErrNotFound)

	person, err := persons.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Nil(t, person.Team)
}

func TestTeamMembersOrderedByID(t *testing.T) {
	ctx := context.Background()
	persons, teams, _ := newRepos(t)

	team, err := teams.Create(ctx, models.NewTeam{Name: "platform"})
	require.NoError(t, err)

	var ids []uint
	for _, name := range []string{"Cy", "Ann", "Bo"} {
		p, err := persons.Create(ctx, models.NewPerson{FirstName: name, LastName: "X", Email: name + "@x.com"})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	for i := len(ids) - 1; i >= 0; i-- {
		_, err := teams.AddMember(ctx, team.ID, ids[i])
		require.NoError(t, err)
	}

	fetched, err := teams.Get(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, ids, lo.Map(fetched.Members, func(m models.Member, _ int) uint { return m.ID }))

	list, err := teams.List(ctx)
	require.NoError(t, err)
	require.Equal(t, fetched, list[0])
}
