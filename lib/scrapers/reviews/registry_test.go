package reviews

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryCoversAllSources(t *testing.T) {
	registry := DefaultRegistry()
	for _, source := range Sources() {
		spec, err := registry.Spec(source)
		require.NoError(t, err, source)
		require.NotEmpty(t, spec.Locators(RoleContainer), "%s has no container locators", source)
		require.NotEmpty(t, spec.Locators(RoleTitle), "%s has no title locators", source)
		require.NotEmpty(t, spec.Locators(RoleRating), "%s has no rating locators", source)
	}
}

func TestRegistryUnknownSource(t *testing.T) {
	_, err := DefaultRegistry().Spec(Source("bogus"))
	require.Error(t, err)
}

func TestParseSource(t *testing.T) {
	for _, source := range Sources() {
		got, err := ParseSource(string(source))
		require.NoError(t, err)
		require.Equal(t, source, got)
	}
	_, err := ParseSource("bogus")
	require.Error(t, err)
}

func TestReviewsUrl(t *testing.T) {
	require.Equal(t,
		"https://www.g2.com/products/slack/reviews",
		SourceG2.ReviewsUrl("https://www.g2.com/products/slack"))
	require.Equal(t,
		"https://www.g2.com/products/slack/reviews",
		SourceG2.ReviewsUrl("https://www.g2.com/products/slack/reviews"))
	require.Equal(t,
		"https://www.capterra.com/p/135003/slack/#reviews",
		SourceCapterra.ReviewsUrl("https://www.capterra.com/p/135003/slack/?ref=search"))
	require.Equal(t,
		"https://www.trustradius.com/products/slack/reviews",
		SourceTrustRadius.ReviewsUrl("https://www.trustradius.com/products/slack/"))
}

func TestPageUrl(t *testing.T) {
	require.Equal(t,
		"https://example.com/reviews?page=3",
		pageUrl("https://example.com/reviews", 3))
}
