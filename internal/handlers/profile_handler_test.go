package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolo-app/backend/internal/models"
)

type profileFixture struct {
	handler   *ProfileHandler
	profiles  *mockProfileRepo
	follows   *mockFollowRepo
	favorites *mockFavoriteRepo
	reviews   *mockReviewRepo
}

func newProfileFixture() *profileFixture {
	profiles := newMockProfileRepo()
	follows := newMockFollowRepo()
	favorites := newMockFavoriteRepo()
	reviews := newMockReviewRepo()
	for _, u := range []struct{ id, name string }{{"a", "alice"}, {"b", "bob"}, {"c", "carol"}} {
		_ = profiles.CreateProfile(&models.Profile{UserID: u.id, Username: u.name, Email: u.name + "@example.com"})
	}
	return &profileFixture{
		handler:   NewProfileHandler(profiles, follows, favorites, reviews),
		profiles:  profiles,
		follows:   follows,
		favorites: favorites,
		reviews:   reviews,
	}
}

func TestGetProfile_ReturnsExactCounts(t *testing.T) {
	f := newProfileFixture()
	require.NoError(t, f.follows.CreateFollow(&models.Follow{FollowerID: "b", FollowingID: "a"}))
	require.NoError(t, f.follows.CreateFollow(&models.Follow{FollowerID: "c", FollowingID: "a"}))
	require.NoError(t, f.follows.CreateFollow(&models.Follow{FollowerID: "a", FollowingID: "b"}))

	e := newTestEcho()
	c, rec := newTestContext(e, http.MethodGet, "/api/v1/profile", "", "a")
	require.NoError(t, f.handler.GetProfile(c))

	data := decodeData(t, rec)
	assert.JSONEq(t, "2", string(data["follower_count"]))
	assert.JSONEq(t, "1", string(data["following_count"]))
}

func TestGetUser_ReportsIsFollowing(t *testing.T) {
	f := newProfileFixture()
	require.NoError(t, f.follows.CreateFollow(&models.Follow{FollowerID: "a", FollowingID: "b"}))

	get := func(viewer, target string) map[string]json.RawMessage {
		e := newTestEcho()
		c, rec := newTestContext(e, http.MethodGet, "/", "", viewer)
		c.SetParamNames("id")
		c.SetParamValues(target)
		require.NoError(t, f.handler.GetUser(c))
		return decodeData(t, rec)
	}

	assert.JSONEq(t, "true", string(get("a", "b")["is_following"]))
	assert.JSONEq(t, "false", string(get("b", "a")["is_following"]))
}

func TestGetUser_UnknownTarget(t *testing.T) {
	f := newProfileFixture()
	e := newTestEcho()
	c, _ := newTestContext(e, http.MethodGet, "/", "", "a")
	c.SetParamNames("id")
	c.SetParamValues("nobody")

	err := f.handler.GetUser(c)
	assert.Equal(t, http.StatusNotFound, httpStatus(err, nil))
}

func TestSearchProfiles_RequiresQuery(t *testing.T) {
	f := newProfileFixture()
	e := newTestEcho()
	c, _ := newTestContext(e, http.MethodGet, "/api/v1/users/search", "", "a")

	err := f.handler.SearchProfiles(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(err, nil))
}

func TestSearchProfiles_MatchesCaseInsensitively(t *testing.T) {
	f := newProfileFixture()
	e := newTestEcho()
	c, rec := newTestContext(e, http.MethodGet, "/api/v1/users/search?q=ALI", "", "a")
	require.NoError(t, f.handler.SearchProfiles(c))

	var results []struct {
		UserID   string `json:"user_id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(decodeData(t, rec)["profiles"], &results))
	require.Len(t, results, 1)
	assert.Equal(t, "alice", results[0].Username)
}

func TestGetUserReviews_NewestFirst(t *testing.T) {
	f := newProfileFixture()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	old := seedReview(f.reviews, "b", 1, "old", 3, base)
	recent := seedReview(f.reviews, "b", 1, "recent", 4, base.Add(time.Hour))
	seedReview(f.reviews, "c", 1, "someone else", 5, base.Add(2*time.Hour))

	e := newTestEcho()
	c, rec := newTestContext(e, http.MethodGet, "/", "", "a")
	c.SetParamNames("id")
	c.SetParamValues("b")
	require.NoError(t, f.handler.GetUserReviews(c))

	var reviews []models.Review
	require.NoError(t, json.Unmarshal(decodeData(t, rec)["reviews"], &reviews))
	require.Len(t, reviews, 2)
	assert.Equal(t, recent.ID, reviews[0].ID)
	assert.Equal(t, old.ID, reviews[1].ID)
}

func TestGetFavorites_SkipsDeletedReviews(t *testing.T) {
	f := newProfileFixture()
	kept := seedReview(f.reviews, "b", 1, "kept", 4, time.Now().UTC())
	gone := seedReview(f.reviews, "b", 1, "gone", 2, time.Now().UTC())

	viewer, err := f.profiles.GetProfileByUserID("a")
	require.NoError(t, err)
	require.NoError(t, f.favorites.AddFavorite(&models.FavoriteReview{ProfileID: viewer.ID, ReviewID: kept.ID}))
	require.NoError(t, f.favorites.AddFavorite(&models.FavoriteReview{ProfileID: viewer.ID, ReviewID: gone.ID}))
	require.NoError(t, f.reviews.DeleteOwnedReview(gone.ID, "b"))

	e := newTestEcho()
	c, rec := newTestContext(e, http.MethodGet, "/api/v1/profile/favorites", "", "a")
	require.NoError(t, f.handler.GetFavorites(c))

	var reviews []models.Review
	require.NoError(t, json.Unmarshal(decodeData(t, rec)["reviews"], &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, kept.ID, reviews[0].ID)
}
