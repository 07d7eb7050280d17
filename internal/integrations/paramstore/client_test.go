package paramstore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a simple fake implementing ssmAPI for tests.
type fakeAPI struct {
	out    *ssm.GetParametersOutput
	err    error
	lastIn *ssm.GetParametersInput
	calls  int
}

func (f *fakeAPI) GetParameters(_ context.Context, in *ssm.GetParametersInput, _ ...func(*ssm.Options)) (*ssm.GetParametersOutput, error) {
	f.calls++
	f.lastIn = in
	return f.out, f.err
}

func strPtr(s string) *string { return &s }

func TestGetParameters_HappyPath(t *testing.T) {
	api := &fakeAPI{out: &ssm.GetParametersOutput{
		Parameters: []types.Parameter{
			{Name: strPtr("/fin/notion_api_key"), Value: strPtr("secret"), Type: types.ParameterTypeSecureString},
			{Name: strPtr("/fin/notion_database_id"), Value: strPtr("db-1")},
		},
		InvalidParameters: []string{"/fin/serper_api_key"},
	}}
	client, err := New(api)
	require.NoError(t, err)

	got, err := client.GetParameters(context.Background(), []string{"/fin/notion_api_key", "/fin/notion_database_id", "/fin/serper_api_key"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"/fin/notion_api_key":     "secret",
		"/fin/notion_database_id": "db-1",
	}, got)
	require.NotNil(t, api.lastIn.WithDecryption)
	require.True(t, *api.lastIn.WithDecryption)
}

func TestGetParameters_SkipsBlankNames(t *testing.T) {
	api := &fakeAPI{out: &ssm.GetParametersOutput{}}
	client, err := New(api)
	require.NoError(t, err)

	got, err := client.GetParameters(context.Background(), []string{" ", ""})
	require.NoError(t, err)
	require.Empty(t, got)
	require.Zero(t, api.calls)
}

func TestGetParameters_TooManyNames(t *testing.T) {
	client, err := New(&fakeAPI{})
	require.NoError(t, err)

	names := make([]string, maxBatch+1)
	for i := range names {
		names[i] = fmt.Sprintf("/p/%d", i)
	}
	_, err = client.GetParameters(context.Background(), names)
	require.ErrorContains(t, err, "at most")
}

func TestGetParameters_ApiError(t *testing.T) {
	client, err := New(&fakeAPI{err: errors.New("boom")})
	require.NoError(t, err)
	_, err = client.GetParameters(context.Background(), []string{"p"})
	require.ErrorContains(t, err, "boom")
}

func TestGetParameters_IgnoresIncompleteEntries(t *testing.T) {
	api := &fakeAPI{out: &ssm.GetParametersOutput{
		Parameters: []types.Parameter{{Name: strPtr("p"), Value: nil}},
	}}
	client, err := New(api)
	require.NoError(t, err)
	got, err := client.GetParameters(context.Background(), []string{"p"})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGetParameters_ClientNotInitialized(t *testing.T) {
	_, err := (&Client{}).GetParameters(context.Background(), []string{"p"})
	require.ErrorContains(t, err, "not initialized")
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil)
	require.ErrorContains(t, err, "must not be nil")
}
