//go:build integration_test

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/semearlages/semearapi/internal/auth"
	"github.com/semearlages/semearapi/pkg"
)

func (s *IntegrationTestSuite) login(client *http.Client, email, password string) *http.Response {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	s.Require().NoError(err)

	resp, err := client.Post(serverEndpoint+"/api/auth/login", pkg.ContentType.JSON, bytes.NewReader(body))
	s.Require().NoError(err)
	return resp
}

func (s *IntegrationTestSuite) readBody(resp *http.Response) []byte {
	defer func() {
		s.Require().NoError(resp.Body.Close())
	}()
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return body
}

func (s *IntegrationTestSuite) accessTokenCookie(client *http.Client) *http.Cookie {
	u, err := url.Parse(serverEndpoint)
	s.Require().NoError(err)
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == auth.AccessTokenCookie {
			return c
		}
	}
	return nil
}

func (s *IntegrationTestSuite) TestAuthFlow() {
	client := s.newClient()

	resp, err := client.Get(serverEndpoint + "/api/auth/me")
	s.Require().NoError(err)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.readBody(resp)

	resp = s.login(client, testAdminEmail, "wrong-password")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Empty(resp.Header.Values("Set-Cookie"))
	s.readBody(resp)
	s.Nil(s.accessTokenCookie(client))

	resp = s.login(client, testAdminEmail, testAdminPassword)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Contains(resp.Header.Get("Set-Cookie"), "Max-Age=86400")
	s.Contains(resp.Header.Get("Set-Cookie"), "HttpOnly")
	s.JSONEq(`{"message": "Login realizado com sucesso", "user_email": "admin@projetosemear.org.br"}`, string(s.readBody(resp)))
	s.Require().NotNil(s.accessTokenCookie(client))

	resp, err = client.Get(serverEndpoint + "/api/auth/me")
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var admin auth.Admin
	s.Require().NoError(json.Unmarshal(s.readBody(resp), &admin))
	s.Equal(testAdminEmail, admin.Email)
	s.Positive(admin.ID)

	resp, err = client.Post(serverEndpoint+"/api/auth/logout", pkg.ContentType.JSON, nil)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.readBody(resp)
	s.Nil(s.accessTokenCookie(client))

	resp, err = client.Get(serverEndpoint + "/api/auth/me")
	s.Require().NoError(err)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.readBody(resp)
}

func (s *IntegrationTestSuite) TestLoginRateLimited() {
	client := s.newClient()

	// 11 attempts span at most two fixed windows of 5
	rateLimited := 0
	for i := 0; i < 11; i++ {
		resp := s.login(client, fmt.Sprintf("nobody-%d@example.org", i), "whatever")
		if resp.StatusCode == http.StatusTooManyRequests {
			rateLimited++
			s.NotEmpty(resp.Header.Get("Retry-After"))
		} else {
			s.Equal(http.StatusUnauthorized, resp.StatusCode)
		}
		s.readBody(resp)
	}
	s.Positive(rateLimited)
}
