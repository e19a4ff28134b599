package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"foodshare/internal/domain"
	"foodshare/internal/domain/models"
)

func TestEmptyCriteriaMatchesAllRows(t *testing.T) {
	var b Builder
	clause, args := b.Clause()
	require.Empty(t, clause)
	require.Nil(t, args)
}

func TestConditionsJoinedWithAnd(t *testing.T) {
	var b Builder
	b.Eq("fdr.status", "pending").
		DateFrom("fdr.reserved_at", "2025-01-01").
		DateTo("fdr.reserved_at", "2025-01-31")

	clause, args := b.Clause()
	require.Equal(t, "WHERE fdr.status = ? AND DATE(fdr.reserved_at) >= ? AND DATE(fdr.reserved_at) <= ?", clause)
	require.Equal(t, []any{"pending", "2025-01-01", "2025-01-31"}, args)
}

func TestCriterionValuesNeverEmbeddedInSQL(t *testing.T) {
	status := "pending'; DROP TABLE user_reports;--"
	search := "Maria Santos"

	var b Builder
	b.Eq("ur.status", status).
		Like(search, "ur.description", "reporter.full_name").
		DateFrom("ur.created_at", "2025-03-01")

	clause, args := b.Clause()
	require.NotContains(t, clause, status)
	require.NotContains(t, clause, search)
	require.Len(t, args, 4)
	require.Contains(t, args, "%"+search+"%")
}

func TestLikeBindsPatternPerColumn(t *testing.T) {
	var b Builder
	b.Like("rice", "fd.title", "ua_requester.full_name", "ua_donor.full_name")

	clause, args := b.Clause()
	require.Equal(t, "WHERE (fd.title LIKE ? OR ua_requester.full_name LIKE ? OR ua_donor.full_name LIKE ?)", clause)
	require.Equal(t, []any{"%rice%", "%rice%", "%rice%"}, args)
}

func TestEmptyTermAddsNothing(t *testing.T) {
	var b Builder
	b.Like("", "fd.title").Eq("fd.status", "").DateFrom("fd.created_at", "")
	clause, _ := b.Clause()
	require.Empty(t, clause)
}

func TestEnumRejectsUnknownValue(t *testing.T) {
	_, err := Enum("status", "bogus", models.ReportStatuses)
	require.Error(t, err)
	require.True(t, domain.IsValidation(err))
	require.Equal(t, "Invalid status.", err.Error())
}

func TestEnumWildcards(t *testing.T) {
	for _, v := range []string{"", "all"} {
		got, err := Enum("status", v, models.ReportStatuses)
		require.NoError(t, err)
		require.Empty(t, got)
	}

	got, err := Enum("status", "pending", models.ReportStatuses)
	require.NoError(t, err)
	require.Equal(t, "pending", got)
}

func TestEnumStrictHasNoWildcard(t *testing.T) {
	for _, v := range []string{"", "all", "bogus"} {
		err := EnumStrict("status", v, models.ReportStatuses)
		require.Error(t, err, "value %q", v)
		require.True(t, domain.IsValidation(err))
		require.Equal(t, "Invalid status.", err.Error())
	}

	require.NoError(t, EnumStrict("status", "pending", models.ReportStatuses))
}

func TestFieldRank(t *testing.T) {
	rank := FieldRank("ur.priority", "critical", "high", "medium", "low")
	require.Equal(t, "FIELD(ur.priority, 'critical', 'high', 'medium', 'low')", rank)
	require.Equal(t, 1, strings.Count(rank, "FIELD("))
}

func TestPageClamp(t *testing.T) {
	for _, n := range []int{-3, 0} {
		p := Page{Number: n, Size: 10}.Clamp(10)
		require.Equal(t, 1, p.Number)
	}

	p := Page{Number: 2, Size: 10}.Clamp(50)
	limit, offset := p.LimitOffset()
	require.Equal(t, 10, limit)
	require.Equal(t, 10, offset)

	p = Page{Number: 3}.Clamp(50)
	limit, offset = p.LimitOffset()
	require.Equal(t, 50, limit)
	require.Equal(t, 100, offset)
}
