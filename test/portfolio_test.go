package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/hossin-jomm/creative-backend/internal/portfolio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) doPortfolioRequest(
	ctx context.Context,
	t *testing.T,
	method, path, token string,
	body []byte,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewBuffer(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, bodyReader)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, respBytes
}

func (s *IntegrationTestSuite) TestPortfolio_PublicReads() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("list without token", func(t *testing.T) {
		resp, respBytes := s.doPortfolioRequest(ctx, t, "GET", "/api/portfolio", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var listResp portfolio.ListResponse
		require.NoError(t, json.Unmarshal(respBytes, &listResp))
		// the seeded showcase items are always there
		assert.GreaterOrEqual(t, len(listResp.Items), 6)
	})

	t.Run("categories without token", func(t *testing.T) {
		resp, respBytes := s.doPortfolioRequest(ctx, t, "GET", "/api/portfolio/categories", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var categoriesResp portfolio.CategoriesResponse
		require.NoError(t, json.Unmarshal(respBytes, &categoriesResp))
		assert.Equal(t, portfolio.Categories, categoriesResp.Categories)
	})

	t.Run("get seeded item without token", func(t *testing.T) {
		resp, respBytes := s.doPortfolioRequest(ctx, t, "GET", "/api/portfolio/1", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var itemResp portfolio.ItemResponse
		require.NoError(t, json.Unmarshal(respBytes, &itemResp))
		require.NotNil(t, itemResp.Item)
		assert.Equal(t, "1", itemResp.Item.ID)
		assert.Equal(t, "حملة إعلانية لمطعم فاخر", itemResp.Item.Title)
	})

	t.Run("get unknown item", func(t *testing.T) {
		resp, respBytes := s.doPortfolioRequest(ctx, t, "GET", "/api/portfolio/no-such-id", "", nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, string(respBytes), portfolio.MsgItemNotFound)
	})
}

func (s *IntegrationTestSuite) TestPortfolio_MutationsNeedAuth() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	itemJson := []byte(`{"title":"عمل","category":"أخرى","type":"image","url":"https://example.com/a.jpg"}`)

	for _, tc := range []struct {
		method string
		path   string
		body   []byte
	}{
		{method: "POST", path: "/api/portfolio", body: itemJson},
		{method: "PUT", path: "/api/portfolio/1", body: itemJson},
		{method: "DELETE", path: "/api/portfolio/1"},
	} {
		t.Run(tc.method+" without token", func(t *testing.T) {
			resp, respBytes := s.doPortfolioRequest(ctx, t, tc.method, tc.path, "", tc.body)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Contains(t, string(respBytes), "مفقود رمز المصادقة")
		})

		t.Run(tc.method+" with garbage token", func(t *testing.T) {
			resp, respBytes := s.doPortfolioRequest(ctx, t, tc.method, tc.path, "garbage-token", tc.body)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Contains(t, string(respBytes), "غير مصرح لك بالوصول")
		})
	}
}

func (s *IntegrationTestSuite) TestPortfolio_AdminCRUD() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.redisDataCleanup(ctx))
	token := doLogin(ctx, t)

	// add
	addJson := []byte(`{
		"title": "فيديو جديد للمعرض",
		"category": "موشن جرافيك",
		"type": "video",
		"url": "https://example.com/new-video.mp4",
		"thumbnail": "https://example.com/new-video-poster.jpg",
		"description": "وصف العمل الجديد"
	}`)
	resp, respBytes := s.doPortfolioRequest(ctx, t, "POST", "/api/portfolio", token, addJson)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var addResp portfolio.ItemResponse
	require.NoError(t, json.Unmarshal(respBytes, &addResp))
	assert.Equal(t, portfolio.MsgItemAdded, addResp.Message)
	require.NotNil(t, addResp.Item)
	require.NotEmpty(t, addResp.Item.ID)
	itemID := addResp.Item.ID

	// add with missing fields is rejected
	resp, respBytes = s.doPortfolioRequest(ctx, t, "POST", "/api/portfolio", token, []byte(`{"title":"ناقص"}`))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(respBytes), portfolio.MsgMissingFields)

	// the new item comes first in the public list
	resp, respBytes = s.doPortfolioRequest(ctx, t, "GET", "/api/portfolio", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listResp portfolio.ListResponse
	require.NoError(t, json.Unmarshal(respBytes, &listResp))
	require.NotEmpty(t, listResp.Items)
	assert.Equal(t, itemID, listResp.Items[0].ID)

	// full replace
	updateJson := []byte(`{
		"title": "عنوان محدث",
		"category": "هوية بصرية",
		"type": "image",
		"url": "https://example.com/updated.jpg"
	}`)
	resp, respBytes = s.doPortfolioRequest(ctx, t, "PUT", fmt.Sprintf("/api/portfolio/%s", itemID), token, updateJson)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updateResp portfolio.ItemResponse
	require.NoError(t, json.Unmarshal(respBytes, &updateResp))
	assert.Equal(t, portfolio.MsgItemUpdated, updateResp.Message)
	require.NotNil(t, updateResp.Item)
	assert.Equal(t, itemID, updateResp.Item.ID)
	assert.Equal(t, "عنوان محدث", updateResp.Item.Title)
	assert.Equal(t, addResp.Item.CreatedAt.Unix(), updateResp.Item.CreatedAt.Unix())
	// replaced fields not present in the update body are cleared
	assert.Empty(t, updateResp.Item.Thumbnail)
	assert.Empty(t, updateResp.Item.Description)

	// update of an unknown item
	resp, respBytes = s.doPortfolioRequest(ctx, t, "PUT", "/api/portfolio/no-such-id", token, updateJson)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(respBytes), portfolio.MsgItemNotFound)

	// delete
	resp, respBytes = s.doPortfolioRequest(ctx, t, "DELETE", fmt.Sprintf("/api/portfolio/%s", itemID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var deleteResp portfolio.ItemResponse
	require.NoError(t, json.Unmarshal(respBytes, &deleteResp))
	assert.Equal(t, portfolio.MsgItemDeleted, deleteResp.Message)

	// the item is gone now
	resp, _ = s.doPortfolioRequest(ctx, t, "GET", fmt.Sprintf("/api/portfolio/%s", itemID), "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.doPortfolioRequest(ctx, t, "DELETE", fmt.Sprintf("/api/portfolio/%s", itemID), token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
