//go:build integration_test

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/semearlages/semearapi/internal/news"
	"github.com/semearlages/semearapi/pkg"
)

func (s *IntegrationTestSuite) listNews() []news.News {
	resp, err := http.Get(serverEndpoint + "/api/news")
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var items []news.News
	s.Require().NoError(json.Unmarshal(s.readBody(resp), &items))
	return items
}

func (s *IntegrationTestSuite) adminRequest(method, path, body string) *http.Response {
	req, err := http.NewRequest(method, serverEndpoint+path, bytes.NewReader([]byte(body)))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", pkg.ContentType.JSON)

	resp, err := s.adminClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *IntegrationTestSuite) TestNewsSeeded() {
	var count int
	s.Require().NoError(s.DB.QueryRow(`SELECT COUNT(*) FROM news`).Scan(&count))
	s.GreaterOrEqual(count, 3)

	items := s.listNews()
	s.Require().NotEmpty(items)
	for i := 1; i < len(items); i++ {
		s.False(items[i].Date.After(items[i-1].Date), "news must be ordered by date desc")
	}
}

func (s *IntegrationTestSuite) TestNewsCRUD() {
	before := s.listNews()

	resp, err := http.Post(serverEndpoint+"/api/news", pkg.ContentType.JSON, bytes.NewReader([]byte(`{}`)))
	s.Require().NoError(err)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.readBody(resp)

	resp = s.adminRequest("POST", "/api/news", `{"title": "Nova turma", "excerpt": "Inscrições", "content": "Conteúdo", "date": "2024-11-01"}`)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created news.News
	s.Require().NoError(json.Unmarshal(s.readBody(resp), &created))
	s.Positive(created.ID)

	// the cached list is invalidated by the write
	after := s.listNews()
	s.Len(after, len(before)+1)
	s.Equal(created.ID, after[0].ID)

	itemPath := fmt.Sprintf("/api/news/%d", created.ID)

	resp = s.adminRequest("PUT", itemPath, `{"date": "2999-01-01"}`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.readBody(resp)

	resp = s.adminRequest("PUT", itemPath, `{"title": "Nova turma de costura"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.readBody(resp)

	resp, err = http.Get(serverEndpoint + itemPath)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var got news.News
	s.Require().NoError(json.Unmarshal(s.readBody(resp), &got))
	s.Equal("Nova turma de costura", got.Title)
	s.Equal("Inscrições", got.Excerpt)
	s.Equal(news.NewDate(2024, 11, 1), got.Date)

	var title string
	s.Require().NoError(s.DB.QueryRow(`SELECT title FROM news WHERE id = $1`, created.ID).Scan(&title))
	s.Equal("Nova turma de costura", title)

	resp = s.adminRequest("DELETE", itemPath, "")
	s.Equal(http.StatusNoContent, resp.StatusCode)
	s.readBody(resp)

	resp, err = http.Get(serverEndpoint + itemPath)
	s.Require().NoError(err)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.readBody(resp)

	resp = s.adminRequest("DELETE", itemPath, "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.readBody(resp)

	resp, err = http.Get(serverEndpoint + "/api/news/999999")
	s.Require().NoError(err)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.readBody(resp)
}
