package reviews

import (
	"fmt"
	"strings"
)

// SiteProfile carries the per-site constants that are not locators: where
// the site lives, how to search it, and how its reviews pages address.
type SiteProfile struct {
	BaseUrl   string
	SearchUrl string
	// ProductPath is the url fragment identifying a product page in
	// search results.
	ProductPath string
}

var profiles = map[Source]SiteProfile{
	SourceG2: {
		BaseUrl:     "https://www.g2.com",
		SearchUrl:   "https://www.g2.com/search",
		ProductPath: "/products/",
	},
	SourceCapterra: {
		BaseUrl:     "https://www.capterra.com",
		SearchUrl:   "https://www.capterra.com/search",
		ProductPath: "/p/",
	},
	SourceTrustRadius: {
		BaseUrl:     "https://www.trustradius.com",
		SearchUrl:   "https://www.trustradius.com/search",
		ProductPath: "/products/",
	},
}

// Profile returns the site constants for a source.
func (s Source) Profile() SiteProfile {
	return profiles[s]
}

// ReviewsUrl converts a product page address into its reviews view.
func (s Source) ReviewsUrl(productUrl string) string {
	if s == SourceCapterra {
		// capterra renders reviews on the product page itself
		productUrl = strings.SplitN(productUrl, "?", 2)[0]
		if !strings.HasSuffix(productUrl, "/") {
			productUrl += "/"
		}
		return productUrl + "#reviews"
	}
	if strings.HasSuffix(productUrl, "/reviews") {
		return productUrl
	}
	if strings.HasSuffix(productUrl, "/") {
		return productUrl + "reviews"
	}
	return productUrl + "/reviews"
}

func pageUrl(reviewsUrl string, page int) string {
	return fmt.Sprintf("%s?page=%d", reviewsUrl, page)
}

var g2Locators = LocatorSpec{
	RoleContainer: {
		"div[data-testid='review']",
		"[data-cy='review']",
		".review-item",
		".review-card",
		".review",
		".paper",
		"article",
		".border.border-gray-300",
		"[class*='review']",
	},
	RoleTitle: {
		"h3",
		"h4",
		"h5",
		"[data-testid*='title']",
		"[data-testid*='header']",
		".review-title",
		".review-headline",
		"div[class*='title']",
		"div[class*='Title']",
	},
	RoleBody: {
		"p[itemprop='reviewBody']",
		"[data-testid*='body']",
		"[data-testid*='content']",
		".review-content",
		".review-text",
		".review-body",
		"div[class*='content']",
		"div[class*='Content']",
		"p",
	},
	RoleDate: {
		"[data-testid='review-date']",
		".review-date",
		"time",
		".date",
		"[datetime]",
	},
	RoleRating: {
		"[data-testid='star-rating']",
		".star-rating",
		".rating",
		"[aria-label*='star']",
		".stars",
	},
	RoleReviewerName: {
		"[data-testid='reviewer-name']",
		".reviewer-name",
		".review-author",
		".author-name",
		"span[itemprop='author']",
	},
	RoleReviewerContext: {
		".reviewer-company",
		".company-name",
		".job-title",
		"[data-testid='reviewer-info']",
	},
	RolePros: {
		".pros",
		".review-pros",
		"[data-testid*='pros']",
	},
	RoleCons: {
		".cons",
		".review-cons",
		"[data-testid*='cons']",
	},
	RoleNextPage: {
		"a[data-testid='pagination-next']",
		".pagination .next",
		"a[aria-label='Next']",
		".pagination a[rel='next']",
		"button[aria-label*='next']",
	},
}

var capterraLocators = LocatorSpec{
	RoleContainer: {
		".review-item",
		".review-card",
		".review",
		"[data-testid*='review']",
		".user-review",
		".review-container",
		"article[data-review-id]",
	},
	RoleTitle: {
		".review-title",
		".review-headline",
		"h3",
		".title",
		"[data-testid*='title']",
	},
	RoleBody: {
		".review-content",
		".review-text",
		".review-body",
		".review-description",
		".user-review-text",
		"p[data-testid*='review-body']",
	},
	RoleDate: {
		".review-date",
		".date",
		"time",
		"[datetime]",
		".posted-date",
		"[data-testid*='date']",
	},
	RoleRating: {
		".star-rating",
		".rating",
		"[data-rating]",
		".stars",
		"[aria-label*='star']",
	},
	RoleReviewerName: {
		".reviewer-name",
		".review-author",
		".author-name",
		".user-name",
		"[data-testid*='reviewer']",
	},
	RoleReviewerContext: {
		".reviewer-company",
		".company-name",
		".job-title",
		".user-info",
		".reviewer-info",
	},
	RolePros: {
		".pros",
		".review-pros",
		"[data-testid*='pros']",
	},
	RoleCons: {
		".cons",
		".review-cons",
		"[data-testid*='cons']",
	},
	RoleLoadMore: {
		"button[data-action*='load-more']",
		"button[data-action*='show-more']",
		".load-more-reviews",
		".show-more-reviews",
	},
	RoleNextPage: {
		".pagination .next",
		"a[rel='next']",
	},
}

var trustRadiusLocators = LocatorSpec{
	RoleContainer: {
		".review-item",
		".review-card",
		".review",
		"[data-testid*='review']",
		".serp-review",
		"article",
	},
	RoleTitle: {
		".review-title",
		".review-headline",
		"h3",
		"h4",
		"[data-testid*='title']",
	},
	RoleBody: {
		".review-content",
		".review-text",
		".review-body",
		".review-answer",
		"[data-testid*='body']",
	},
	RoleDate: {
		".review-date",
		".date",
		"time",
		"[datetime]",
		"[data-testid*='date']",
	},
	RoleRating: {
		".overall-rating",
		".total-score",
		".overall-score",
		".rating",
		"[aria-label*='star']",
	},
	RoleReviewerName: {
		".reviewer-name",
		".review-author",
		".author-name",
		"[data-testid*='reviewer']",
	},
	RoleReviewerContext: {
		".reviewer-company",
		".company-name",
		".job-title",
		".user-info",
	},
	RolePros: {
		".likes",
		".pros",
		".positives",
		"[data-testid*='likes']",
	},
	RoleCons: {
		".dislikes",
		".cons",
		".negatives",
		"[data-testid*='dislikes']",
	},
	RoleNextPage: {
		"a[aria-label='Next']",
		".pagination .next",
		"a[rel='next']",
		".next-page",
	},
}
