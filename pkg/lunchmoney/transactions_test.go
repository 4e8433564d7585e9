package lunchmoney

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Get(ctx context.Context, path string, params []Param) (json.RawMessage, error) {
	args := m.Called(ctx, path, params)

	var body json.RawMessage
	if args.Get(0) != nil {
		body = json.RawMessage(args.Get(0).(string))
	}
	return body, args.Error(1)
}

func (m *MockTransport) SetAuth(token string) {
	m.Called(token)
}

func newTestClient(t *testing.T, transport Transport, token string) *Client {
	t.Helper()
	client := &Client{
		transport: transport,
		token:     token,
		options:   &ClientOptions{},
		baseURL:   "https://api.test.com",
	}
	client.initServices()
	return client
}

func strPtr(s string) *string      { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestQueryParams_AllPresenceCombinations(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		params := &ListTransactionsParams{}
		var want []string
		if mask&1 != 0 {
			params.StartDate = strPtr("2024-01-01")
			want = append(want, "start_date")
		}
		if mask&2 != 0 {
			params.EndDate = strPtr("2024-01-31")
			want = append(want, "end_date")
		}
		if mask&4 != 0 {
			params.CategoryID = floatPtr(7)
			want = append(want, "category_id")
		}

		var got []string
		for _, p := range params.QueryParams() {
			got = append(got, p.Key)
		}

		sort.Strings(want)
		sort.Strings(got)
		assert.Equal(t, want, got, "mask %03b", mask)
	}
}

func TestQueryParams_ZeroCategoryIsKept(t *testing.T) {
	params := &ListTransactionsParams{CategoryID: floatPtr(0)}

	assert.Equal(t, []Param{{Key: "category_id", Value: "0"}}, params.QueryParams())
}

func TestQueryParams_NilParams(t *testing.T) {
	var params *ListTransactionsParams
	assert.Empty(t, params.QueryParams())
}

func TestFormatCategoryID(t *testing.T) {
	assert.Equal(t, "0", FormatCategoryID(0))
	assert.Equal(t, "42", FormatCategoryID(42))
	assert.Equal(t, "1234567", FormatCategoryID(1234567))
	assert.Equal(t, "-3", FormatCategoryID(-3))
	assert.Equal(t, "12.5", FormatCategoryID(12.5))
}

func TestTransactionService_List(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport, "token")

	mockTransport.On("Get",
		mock.Anything,
		"/v1/transactions",
		[]Param{
			{Key: "start_date", Value: "2024-01-01"},
			{Key: "end_date", Value: "2024-01-31"},
		},
	).Return(`{"transactions":[{"id":1,"payee":"Grocery Store"}]}`, nil)

	result, err := client.Transactions.List(context.Background(), &ListTransactionsParams{
		StartDate: strPtr("2024-01-01"),
		EndDate:   strPtr("2024-01-31"),
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"transactions":[{"id":1,"payee":"Grocery Store"}]}`, string(result.Raw))
	mockTransport.AssertExpectations(t)
}

func TestTransactionService_ListWithoutTokenSkipsTransport(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport, "")

	_, err := client.Transactions.List(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
	mockTransport.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionService_QueryBuilder(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport, "token")

	mockTransport.On("Get",
		mock.Anything,
		"/v1/transactions",
		[]Param{
			{Key: "start_date", Value: "2024-03-01"},
			{Key: "end_date", Value: "2024-03-31"},
			{Key: "category_id", Value: "0"},
		},
	).Return(`{"transactions":[]}`, nil)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	_, err := client.Transactions.Query().
		Between(start, end).
		WithCategory(0).
		Execute(context.Background())

	require.NoError(t, err)
	mockTransport.AssertExpectations(t)
}

func TestTransactionList_Pretty(t *testing.T) {
	list := &TransactionList{Raw: json.RawMessage(`{"transactions":[]}`)}

	out, err := list.Pretty()

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"transactions\": []\n}", out)
}

func TestTransactionList_PrettyDropsSurroundingWhitespace(t *testing.T) {
	list := &TransactionList{Raw: json.RawMessage("{\"transactions\":[]}\n")}

	out, err := list.Pretty()

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"transactions\": []\n}", out)
}

func TestNewClientWithToken(t *testing.T) {
	client, err := NewClientWithToken("abc123")

	require.NoError(t, err)
	assert.True(t, client.HasToken())
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
}

func TestTransactionList_PrettyKeepsServerKeyOrder(t *testing.T) {
	list := &TransactionList{Raw: json.RawMessage(`{"z":1,"a":{"y":true,"b":null}}`)}

	out, err := list.Pretty()

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"z\": 1,\n  \"a\": {\n    \"y\": true,\n    \"b\": null\n  }\n}", out)
}

func TestClient_ListAgainstServer(t *testing.T) {
	var gotQuery url.Values
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"transactions":[],"has_more":false}`))
	}))
	defer server.Close()

	client, err := NewClient(&ClientOptions{BaseURL: server.URL, Token: "abc123"})
	require.NoError(t, err)

	result, err := client.Transactions.Query().WithCategory(315).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.Equal(t, url.Values{"category_id": {"315"}}, gotQuery)
	assert.JSONEq(t, `{"transactions":[],"has_more":false}`, string(result.Raw))
}

func TestClient_RemoteErrorIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Access token does not exist."}`))
	}))
	defer server.Close()

	client, err := NewClient(&ClientOptions{BaseURL: server.URL, Token: "bad"})
	require.NoError(t, err)

	_, err = client.Transactions.List(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.Equal(t, KindRemote, KindOf(err))
	assert.Equal(t, "Request failed with status code 401: Access token does not exist.", Message(err))
}
