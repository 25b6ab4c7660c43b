package config_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/linkrelay/pkg/cli/config"
)

func TestSlackValidate(t *testing.T) {
	tests := []struct {
		name          string
		botToken      string
		signingSecret string
		appToken      string
		wantErr       bool
		socketMode    bool
	}{
		{name: "webhook", botToken: "xoxb-1", signingSecret: "s3cret"},
		{name: "socket mode", botToken: "xoxb-1", appToken: "xapp-1", socketMode: true},
		{name: "missing bot token", signingSecret: "s3cret", wantErr: true},
		{name: "no transport", botToken: "xoxb-1", wantErr: true},
		{name: "both transports", botToken: "xoxb-1", signingSecret: "s3cret", appToken: "xapp-1", wantErr: true},
		{name: "app token is a bot token", botToken: "xoxb-1", appToken: "xoxb-2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewSlackForTest(tt.botToken, tt.signingSecret, tt.appToken, "")
			err := cfg.Validate()
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Value(t, cfg.IsSocketMode()).Equal(tt.socketMode)
		})
	}
}

func TestSlackConfigureRunsAuthTest(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gt.Value(t, r.URL.Path).Equal("/auth.test")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"team":"acme","team_id":"T1","user":"linkrelay","user_id":"UBOT","bot_id":"BBOT"}`))
	}))
	defer srv.Close()

	cfg := config.NewSlackForTest("xoxb-test", "s3cret", "", srv.URL+"/")
	svc, identity, err := cfg.Configure(context.Background())
	gt.NoError(t, err)
	gt.Value(t, svc).NotNil()
	gt.Value(t, identity.UserID).Equal("UBOT")
	gt.Value(t, identity.TeamID).Equal("T1")
	gt.Value(t, calls).Equal(1)
}

func TestSlackConfigureAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":false,"error":"invalid_auth"}`))
	}))
	defer srv.Close()

	cfg := config.NewSlackForTest("xoxb-bad", "s3cret", "", srv.URL+"/")
	_, _, err := cfg.Configure(context.Background())
	gt.Error(t, err)
}

func TestLinearValidate(t *testing.T) {
	gt.Error(t, config.NewLinearForTest("", "").Validate())
	gt.NoError(t, config.NewLinearForTest("lin_api_x", "").Validate())

	client, err := config.NewLinearForTest("lin_api_x", "http://127.0.0.1:1/graphql").Configure()
	gt.NoError(t, err)
	gt.Value(t, client).NotNil()

	_, err = config.NewLinearForTest("", "").Configure()
	gt.Error(t, err)
}
