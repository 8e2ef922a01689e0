package partnerships

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSchoolYear(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2024-08-01", "2024-2025"},
		{"2024-07-31", "2023-2024"},
		{"2025-01-15", "2024-2025"},
		{"2024-12-31", "2024-2025"},
		{"2023-06-30", "2022-2023"},
	}
	for _, tc := range cases {
		date, err := time.Parse("2006-01-02", tc.date)
		require.NoError(t, err)
		require.Equal(t, tc.want, SchoolYear(date), "date %s", tc.date)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"active", "terminated", "for_renewal", "non_renewal"} {
		require.True(t, ValidStatus(s), s)
	}
	require.False(t, ValidStatus("expired"))
	require.False(t, ValidStatus("Active"))
	require.False(t, ValidStatus(""))
}
