// Copyright 2015 The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v2"
)

const (
	ExpectedMessage  = "I'm here to serve you!!!"
	BearerToken      = "theanswertothegreatquestionoflifetheuniverseandeverythingisfortytwo"
	ExpectedBearer   = "Bearer " + BearerToken
	ExpectedUsername = "arthurdent"
	ExpectedPassword = "42"
)

var invalidHTTPClientConfigs = []struct {
	name   string
	config string
	errMsg string
}{
	{
		name: "basic auth password and file",
		config: `
basic_auth:
  username: user
  password: foo
  password_file: foo
`,
		errMsg: "at most one of basic_auth password & password_file must be configured",
	},
	{
		name: "authorization credentials and file",
		config: `
authorization:
  credentials: foo
  credentials_file: foo
`,
		errMsg: "at most one of authorization credentials & credentials_file must be configured",
	},
	{
		name: "authorization type basic",
		config: `
authorization:
  type: Basic
  credentials: foo
`,
		errMsg: `authorization type cannot be set to "basic", use "basic_auth" instead`,
	},
	{
		name: "authorization and basic auth",
		config: `
authorization:
  credentials: foo
basic_auth:
  username: user
`,
		errMsg: "at most one of basic_auth, oauth2 & authorization must be configured",
	},
	{
		name: "oauth2 without client id",
		config: `
oauth2:
  client_secret: foo
  token_url: http://localhost/token
`,
		errMsg: "oauth2 client_id must be configured",
	},
	{
		name: "oauth2 without secret",
		config: `
oauth2:
  client_id: foo
  token_url: http://localhost/token
`,
		errMsg: "either oauth2 client_secret or client_secret_file must be configured",
	},
	{
		name: "oauth2 without token url",
		config: `
oauth2:
  client_id: foo
  client_secret: foo
`,
		errMsg: "oauth2 token_url must be configured",
	},
	{
		name: "oauth2 and basic auth",
		config: `
oauth2:
  client_id: foo
  client_secret: foo
  token_url: http://localhost/token
basic_auth:
  username: user
`,
		errMsg: "at most one of basic_auth, oauth2 & authorization must be configured",
	},
	{
		name: "tls ca and ca file",
		config: `
tls_config:
  ca: foo
  ca_file: foo
`,
		errMsg: "at most one of ca and ca_file must be configured",
	},
}

func TestInvalidHTTPConfigs(t *testing.T) {
	for _, ee := range invalidHTTPClientConfigs {
		t.Run(ee.name, func(t *testing.T) {
			var cfg HTTPClientConfig
			err := yaml.UnmarshalStrict([]byte(ee.config), &cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), ee.errMsg)
		})
	}
}

func TestValidateHTTPConfigDefaultsAuthorizationType(t *testing.T) {
	var cfg HTTPClientConfig
	require.NoError(t, yaml.UnmarshalStrict([]byte("authorization:\n  credentials: foo\n"), &cfg))
	require.Equal(t, "Bearer", cfg.Authorization.Type)
	require.True(t, cfg.FollowRedirects, "follow_redirects should default to true")
}

func TestEnableHTTP2(t *testing.T) {
	var cfg HTTPClientConfig
	require.NoError(t, yaml.UnmarshalStrict([]byte("follow_redirects: true\n"), &cfg))
	require.True(t, cfg.EnableHTTP2, "enable_http2 should default to true")

	client, err := NewClientFromConfig(cfg, "test")
	require.NoError(t, err)
	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	require.Contains(t, transport.TLSNextProto, "h2")

	require.NoError(t, yaml.UnmarshalStrict([]byte("enable_http2: false\n"), &cfg))
	require.False(t, cfg.EnableHTTP2)

	client, err = NewClientFromConfig(cfg, "test")
	require.NoError(t, err)
	transport, ok = client.Transport.(*http.Transport)
	require.True(t, ok)
	require.NotContains(t, transport.TLSNextProto, "h2")
}

func TestHideHTTPClientConfigSecrets(t *testing.T) {
	cfg := HTTPClientConfig{
		BasicAuth: &BasicAuth{Username: ExpectedUsername, Password: ExpectedPassword},
	}
	s := cfg.String()
	require.NotContains(t, s, ExpectedPassword+"\n")
	require.Contains(t, s, secretToken)
}

func TestJSONMarshalSecret(t *testing.T) {
	type tmp struct {
		S Secret
	}
	for _, tc := range []struct {
		desc     string
		data     tmp
		expected string
	}{
		{
			desc: "inhabited",
			// u003c -> "<"
			// u003e -> ">"
			data:     tmp{"test"},
			expected: "{\"S\":\"\\u003csecret\\u003e\"}",
		},
		{
			desc:     "empty",
			data:     tmp{},
			expected: "{\"S\":\"\"}",
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			c, err := json.Marshal(tc.data)
			require.NoError(t, err)
			require.Equal(t, tc.expected, string(c))
		})
	}
}

func TestNewClientFromConfigNegativeTimeout(t *testing.T) {
	_, err := NewClientFromConfig(DefaultHTTPClientConfig, "test", WithTimeout(-time.Second))
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be negative")
}

func TestNewClientFromConfigSetsTimeout(t *testing.T) {
	client, err := NewClientFromConfig(DefaultHTTPClientConfig, "test", WithTimeout(3*time.Second))
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, client.Timeout)
}

func TestNewClientFromInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	notPEM := filepath.Join(dir, "not-a-ca.pem")
	require.NoError(t, os.WriteFile(notPEM, []byte("not a certificate"), 0o600))

	for _, tc := range []struct {
		name   string
		config HTTPClientConfig
		errMsg string
	}{
		{
			name:   "missing CA file",
			config: HTTPClientConfig{TLSConfig: TLSConfig{CAFile: filepath.Join(dir, "missing.crt")}},
			errMsg: "unable to load specified certificate file",
		},
		{
			name:   "invalid CA",
			config: HTTPClientConfig{TLSConfig: TLSConfig{CAFile: notPEM}},
			errMsg: "unable to use specified CA " + notPEM,
		},
		{
			name:   "cert without key",
			config: HTTPClientConfig{TLSConfig: TLSConfig{CertFile: notPEM}},
			errMsg: "specified without client key file",
		},
		{
			name:   "key without cert",
			config: HTTPClientConfig{TLSConfig: TLSConfig{KeyFile: notPEM}},
			errMsg: "specified without client cert file",
		},
		{
			name: "conflicting auth",
			config: HTTPClientConfig{
				BasicAuth:     &BasicAuth{Username: ExpectedUsername},
				Authorization: &Authorization{Credentials: BearerToken},
			},
			errMsg: "at most one of basic_auth, oauth2 & authorization must be configured",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewClientFromConfig(tc.config, "test")
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestBearerAuthRoundTripper(t *testing.T) {
	fakeRoundTripper := NewRoundTripCheckRequest(func(req *http.Request) {
		bearer := req.Header.Get("Authorization")
		if bearer != ExpectedBearer {
			t.Errorf("The authorization header is different from the expected one.\nGot: %s\nExpected: %s", bearer, ExpectedBearer)
		}
	}, nil, nil)

	// Normal flow.
	bearerAuthRoundTripper := NewAuthorizationCredentialsRoundTripper("Bearer", BearerToken, fakeRoundTripper)
	request, _ := http.NewRequest("GET", "/hitchhiker", nil)
	request.Header.Set("User-Agent", "Douglas Adams mind")
	_, err := bearerAuthRoundTripper.RoundTrip(request)
	require.NoError(t, err)

	// Should honor already Authorization header set.
	bearerAuthRoundTripperShouldNotModifyExistingAuthorization := NewAuthorizationCredentialsRoundTripper("Bearer", "not-"+BearerToken, fakeRoundTripper)
	request, _ = http.NewRequest("GET", "/hitchhiker", nil)
	request.Header.Set("Authorization", ExpectedBearer)
	_, err = bearerAuthRoundTripperShouldNotModifyExistingAuthorization.RoundTrip(request)
	require.NoError(t, err)
}

func TestBearerAuthFileRoundTripper(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "bearer.token")
	require.NoError(t, os.WriteFile(tokenFile, []byte(BearerToken+"\n"), 0o600))

	fakeRoundTripper := NewRoundTripCheckRequest(func(req *http.Request) {
		bearer := req.Header.Get("Authorization")
		if bearer != ExpectedBearer {
			t.Errorf("The authorization header is different from the expected one.\nGot: %s\nExpected: %s", bearer, ExpectedBearer)
		}
	}, nil, nil)

	bearerAuthRoundTripper := NewAuthorizationCredentialsFileRoundTripper("Bearer", tokenFile, fakeRoundTripper)
	request, _ := http.NewRequest("GET", "/hitchhiker", nil)
	_, err := bearerAuthRoundTripper.RoundTrip(request)
	require.NoError(t, err)

	missing := NewAuthorizationCredentialsFileRoundTripper("Bearer", filepath.Join(t.TempDir(), "missing"), fakeRoundTripper)
	request, _ = http.NewRequest("GET", "/hitchhiker", nil)
	_, err = missing.RoundTrip(request)
	require.ErrorContains(t, err, "unable to read authorization credentials file")
}

func TestBasicAuthRoundTripper(t *testing.T) {
	passwordFile := filepath.Join(t.TempDir(), "password")
	require.NoError(t, os.WriteFile(passwordFile, []byte(ExpectedPassword), 0o600))

	for _, tc := range []struct {
		name string
		rt   func(next http.RoundTripper) http.RoundTripper
	}{
		{
			name: "inline password",
			rt: func(next http.RoundTripper) http.RoundTripper {
				return NewBasicAuthRoundTripper(ExpectedUsername, ExpectedPassword, "", next)
			},
		},
		{
			name: "password file",
			rt: func(next http.RoundTripper) http.RoundTripper {
				return NewBasicAuthRoundTripper(ExpectedUsername, "", passwordFile, next)
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fakeRoundTripper := NewRoundTripCheckRequest(func(req *http.Request) {
				username, password, ok := req.BasicAuth()
				if !ok {
					t.Errorf("The Authorization header is unset")
				}
				if username != ExpectedUsername {
					t.Errorf("The username %q is different from the expected one %q", username, ExpectedUsername)
				}
				if password != ExpectedPassword {
					t.Errorf("The password %q is different from the expected one %q", password, ExpectedPassword)
				}
			}, nil, nil)

			request, _ := http.NewRequest("GET", "/hitchhiker", nil)
			_, err := tc.rt(fakeRoundTripper).RoundTrip(request)
			require.NoError(t, err)
		})
	}
}

func TestUserAgentRoundTripper(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, r.Header.Get("User-Agent"))
	}))
	defer server.Close()

	client, err := NewClientFromConfig(DefaultHTTPClientConfig, "test", WithUserAgent("amsend/0.1.0"))
	require.NoError(t, err)

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "amsend/0.1.0", string(body))
}

func TestFollowRedirects(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/redirect" {
			http.Redirect(w, r, server.URL+"/target", http.StatusFound)
			return
		}
		fmt.Fprint(w, ExpectedMessage)
	}))
	defer server.Close()

	for _, tc := range []struct {
		follow bool
		status int
	}{
		{follow: true, status: http.StatusOK},
		{follow: false, status: http.StatusFound},
	} {
		t.Run(fmt.Sprintf("follow=%v", tc.follow), func(t *testing.T) {
			cfg := DefaultHTTPClientConfig
			cfg.FollowRedirects = tc.follow
			client, err := NewClientFromConfig(cfg, "test")
			require.NoError(t, err)

			resp, err := client.Get(server.URL + "/redirect")
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestOAuth2RoundTripper(t *testing.T) {
	var tokenRequests atomic.Int32
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenRequests.Add(1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		assert.Equal(t, "A B", r.Form.Get("scope"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"12345","token_type":"Bearer","expires_in":3600}`)
	}))
	defer tokenServer.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer 12345" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, ExpectedMessage)
	}))
	defer server.Close()

	var cfg HTTPClientConfig
	content := fmt.Sprintf(`
oauth2:
  client_id: "1"
  client_secret: "2"
  scopes: ["A", "B"]
  token_url: %s
`, tokenServer.URL)
	require.NoError(t, yaml.UnmarshalStrict([]byte(content), &cfg))

	client, err := NewClientFromConfig(cfg, "test")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		resp, err := client.Get(server.URL)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, ExpectedMessage, strings.TrimSpace(string(body)))
	}
	require.Equal(t, int32(1), tokenRequests.Load(), "token should be cached between requests")
}

func TestSetDirectory(t *testing.T) {
	cfg := HTTPClientConfig{
		BasicAuth: &BasicAuth{PasswordFile: "password"},
		TLSConfig: TLSConfig{CAFile: "ca.crt", CertFile: "/abs/cert.crt"},
	}
	cfg.SetDirectory("/etc/amsend")

	require.Equal(t, filepath.Join("/etc/amsend", "password"), cfg.BasicAuth.PasswordFile)
	require.Equal(t, filepath.Join("/etc/amsend", "ca.crt"), cfg.TLSConfig.CAFile)
	require.Equal(t, "/abs/cert.crt", cfg.TLSConfig.CertFile)
	require.Empty(t, cfg.TLSConfig.KeyFile)
}

type roundTrip struct {
	theResponse *http.Response
	theError    error
}

func (rt *roundTrip) RoundTrip(r *http.Request) (*http.Response, error) {
	return rt.theResponse, rt.theError
}

type roundTripCheckRequest struct {
	checkRequest func(*http.Request)
	roundTrip
}

func (rt *roundTripCheckRequest) RoundTrip(r *http.Request) (*http.Response, error) {
	rt.checkRequest(r)
	return rt.theResponse, rt.theError
}

// NewRoundTripCheckRequest creates a new instance of a type that implements http.RoundTripper,
// which before returning theResponse and theError, executes checkRequest against a http.Request.
func NewRoundTripCheckRequest(checkRequest func(*http.Request), theResponse *http.Response, theError error) http.RoundTripper {
	return &roundTripCheckRequest{
		checkRequest: checkRequest,
		roundTrip: roundTrip{
			theResponse: theResponse,
			theError:    theError,
		},
	}
}
