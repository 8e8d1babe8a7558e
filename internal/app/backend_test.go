package app

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vocuz/vocuz/internal/api"
	"github.com/vocuz/vocuz/internal/auth"
	"github.com/vocuz/vocuz/internal/config"
	"github.com/vocuz/vocuz/internal/logging"
	"github.com/vocuz/vocuz/internal/remote"
	"github.com/vocuz/vocuz/internal/service"
	"github.com/vocuz/vocuz/internal/testutil"
)

func TestLocalAndRemoteSeeTheSameData(t *testing.T) {
	local := NewLocal(testutil.NewTestDB(t), logging.Discard(), auth.WithHashCost(bcrypt.MinCost))
	assert.Equal(t, config.BackendLocal, local.Kind)

	srv := httptest.NewServer(api.NewRouter(local.APIDeps(), logging.Discard()))
	t.Cleanup(srv.Close)

	rb := NewRemote(remote.NewClient(srv.URL), logging.Discard())
	assert.Equal(t, config.BackendRemote, rb.Kind)

	sess, err := rb.Auth.SignUp(context.Background(), auth.SignUpInput{Email: "ann@example.com", Password: "hunter22"})
	require.NoError(t, err)
	ctx := service.WithUserID(context.Background(), sess.User.ID)

	_, err = rb.Missions.Create(ctx, "Over the wire")
	require.NoError(t, err)

	pending, err := local.Missions.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Over the wire", pending[0].Title)

	profile, err := rb.Profile.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", profile.User.Email)
	assert.Equal(t, 1, profile.Stats.PendingMissions)
}

func TestOpen_RejectsUnknownBackend(t *testing.T) {
	_, err := Open(&config.Config{Backend: "ftp"}, "", logging.Discard())
	assert.Error(t, err)
}

func TestOpen_Remote(t *testing.T) {
	b, err := Open(&config.Config{Backend: config.BackendRemote, APIURL: "http://127.0.0.1:1"}, "tok", logging.Discard())
	require.NoError(t, err)
	require.NotNil(t, b.Client)
	assert.Nil(t, b.DB)
	assert.NoError(t, b.Close())
}
