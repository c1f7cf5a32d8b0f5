package openapi

import (
	"net/http"
	"sort"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopServer struct{}

func (noopServer) GetCase(http.ResponseWriter, *http.Request, GetCaseParams)         {}
func (noopServer) GetCasePage(http.ResponseWriter, *http.Request, GetCasePageParams) {}
func (noopServer) ListCases(http.ResponseWriter, *http.Request)                      {}
func (noopServer) ScoreMarking(http.ResponseWriter, *http.Request)                   {}
func (noopServer) GetOpenAPIDocument(http.ResponseWriter, *http.Request)             {}
func (noopServer) GetHealthStatus(http.ResponseWriter, *http.Request)                {}

func TestRoutesMatchDocument(t *testing.T) {
	swagger, err := GetSwagger()
	require.NoError(t, err)

	var documented []string
	for path, item := range swagger.Paths.Map() {
		for method := range item.Operations() {
			documented = append(documented, method+" "+path)
		}
	}
	sort.Strings(documented)

	r := chi.NewRouter()
	HandlerWithOptions(noopServer{}, ChiServerOptions{BaseRouter: r})

	var routed []string
	err = chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routed = append(routed, method+" "+route)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(routed)

	assert.Equal(t, documented, routed)
}

func TestTableParameterAllowsEmptyValue(t *testing.T) {
	swagger, err := GetSwagger()
	require.NoError(t, err)

	for _, path := range []string{"/case", "/case/page"} {
		op := swagger.Paths.Find(path).Get
		require.NotNil(t, op, path)
		param := op.Parameters.GetByInAndName("query", "table")
		require.NotNil(t, param, path)
		assert.True(t, param.AllowEmptyValue, path)
	}
}
