package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeBackend serves handler on POST /generate-response.
func newFakeBackend(t *testing.T, handler gin.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var calls atomic.Int32
	router := gin.New()
	router.POST("/generate-response", func(c *gin.Context) {
		calls.Add(1)
		handler(c)
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL+"/generate-response", NewHTTPClient(5*time.Second))
	require.NoError(t, err)
	return client, &calls
}

func TestClientSendQuery(t *testing.T) {
	var gotQuery, gotRequestID, gotContentType string
	client, calls := newFakeBackend(t, func(c *gin.Context) {
		var body struct {
			Query string `json:"query"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
			return
		}
		gotQuery = body.Query
		gotRequestID = c.GetHeader(RequestIDHeader)
		gotContentType = c.ContentType()
		c.JSON(http.StatusOK, gin.H{"response": "It is a **retrieval** system."})
	})

	ctx := WithRequestID(context.Background(), "msg-1")
	reply, err := client.SendQuery(ctx, "What is GraphRAG?")
	require.NoError(t, err)

	assert.Equal(t, "It is a **retrieval** system.", reply)
	assert.Equal(t, "What is GraphRAG?", gotQuery)
	assert.Equal(t, "msg-1", gotRequestID)
	assert.Equal(t, "application/json", gotContentType)
	assert.EqualValues(t, 1, calls.Load())
}

func TestClientSendQueryFailures(t *testing.T) {
	tests := []struct {
		name       string
		handler    gin.HandlerFunc
		wantStatus int
		wantDetail string
	}{
		{
			name: "server error with detail",
			handler: func(c *gin.Context) {
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "neo4j unavailable"})
			},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "neo4j unavailable",
		},
		{
			name: "validation error with structured detail",
			handler: func(c *gin.Context) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "field required"}}})
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: `[{"msg":"field required"}]`,
		},
		{
			name: "plain text error",
			handler: func(c *gin.Context) {
				c.String(http.StatusBadGateway, "bad gateway")
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "malformed payload",
			handler: func(c *gin.Context) {
				c.String(http.StatusOK, "not json")
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "missing response field",
			handler: func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"answer": "wrong field"})
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, calls := newFakeBackend(t, tt.handler)

			reply, err := client.SendQuery(context.Background(), "hello")
			require.Error(t, err)
			assert.Empty(t, reply)

			var failed *RequestFailed
			require.True(t, errors.As(err, &failed))
			assert.Equal(t, tt.wantStatus, failed.StatusCode)
			assert.Equal(t, tt.wantDetail, failed.Detail)
			assert.NotNil(t, failed.Err)
			assert.EqualValues(t, 1, calls.Load())
		})
	}
}

func TestClientSendQueryEmpty(t *testing.T) {
	client, calls := newFakeBackend(t, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"response": "unexpected"})
	})

	_, err := client.SendQuery(context.Background(), "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.EqualValues(t, 0, calls.Load(), "no request for a blank query")
}

func TestClientSendQueryTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL + "/generate-response"
	srv.Close()

	client, err := NewClient(endpoint, nil)
	require.NoError(t, err)

	_, err = client.SendQuery(context.Background(), "hello")
	var failed *RequestFailed
	require.True(t, errors.As(err, &failed))
	assert.Zero(t, failed.StatusCode)
	assert.Equal(t, endpoint, failed.Endpoint)
}

func TestNewClientValidatesEndpoint(t *testing.T) {
	for _, endpoint := range []string{"", "localhost:8000", "ftp://host/x", "http://"} {
		_, err := NewClient(endpoint, nil)
		assert.Error(t, err, endpoint)
	}

	client, err := NewClient(DefaultEndpoint, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, client.Endpoint())
}

func TestRequestFailedError(t *testing.T) {
	cause := errors.New("connection refused")

	err := &RequestFailed{StatusCode: 500, Detail: "boom", Err: cause}
	assert.Equal(t, "generate-response request failed (status 500): boom: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	err = &RequestFailed{Err: cause}
	assert.Equal(t, "generate-response request failed: connection refused", err.Error())
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))
	assert.NotEmpty(t, RequestID(context.Background()))
}
