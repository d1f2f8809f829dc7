package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollapseSpace(t *testing.T) {
	require.Equal(t, "a b c", CollapseSpace("  a \t b\n\nc "))
	require.Equal(t, "", CollapseSpace(" \n\t "))
}

func TestCleanReviewText(t *testing.T) {
	require.Equal(t, "", CleanReviewText(""))
	require.Equal(t, "great product...", CleanReviewText("great product…"))
	require.Equal(t, "one two", CleanReviewText("one\n\ntwo"))
}

func TestSplitLines(t *testing.T) {
	require.Equal(t, []string{"first", "second"}, SplitLines("first\n \nsecond\n"))
	require.Nil(t, SplitLines("  \n "))
}

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "microsoftteams", NormalizeName("  Microsoft Teams\n"))
}
