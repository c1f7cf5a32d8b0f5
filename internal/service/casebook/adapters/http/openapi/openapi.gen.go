// Package openapi provides primitives to interact with the openapi HTTP API.
//
// The types and chi wiring below follow the layout oapi-codegen emits for
// openapi.yaml with cfg.yaml and are kept in step with the document by hand;
// running go generate replaces this file with the generator's output.
package openapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// Defines values for MarkingSection.
const (
	ClinicalManagement MarkingSection = "clinicalManagement"
	DataGathering      MarkingSection = "dataGathering"
	RelatingToOthers   MarkingSection = "relatingToOthers"
)

// Defines values for TogglePolarity.
const (
	Negative TogglePolarity = "negative"
	Positive TogglePolarity = "positive"
)

// CaseProfile defines model for CaseProfile.
type CaseProfile struct {
	Error           *string `json:"error,omitempty"`
	Found           bool    `json:"found"`
	Ok              bool    `json:"ok"`
	PatientImageUrl *string `json:"patientImageUrl,omitempty"`
	RecordId        *string `json:"recordId,omitempty"`
}

// CaseRecord defines model for CaseRecord.
type CaseRecord struct {
	Fields map[string]interface{} `json:"fields"`
	Id     string                 `json:"id"`
}

// CaseResponse defines model for CaseResponse.
type CaseResponse struct {
	Profile *CaseProfile `json:"profile,omitempty"`
	Records []CaseRecord `json:"records"`
}

// Error defines model for Error.
type Error struct {
	Detail *string `json:"detail,omitempty"`
	Error  string  `json:"error"`
}

// Health defines model for Health.
type Health struct {
	Status string `json:"status"`
}

// MarkingSection defines model for MarkingSection.
type MarkingSection string

// MarkingState defines model for MarkingState.
type MarkingState struct {
	Negative []bool `json:"negative"`
	Positive []bool `json:"positive"`
}

// RecordList defines model for RecordList.
type RecordList struct {
	Records []CaseRecord `json:"records"`
}

// ScoreMarkingRequest defines model for ScoreMarkingRequest.
type ScoreMarkingRequest struct {
	Negative []bool         `json:"negative"`
	Positive []bool         `json:"positive"`
	Section  MarkingSection `json:"section"`
	Toggle   *Toggle        `json:"toggle,omitempty"`
}

// ScoreMarkingResponse defines model for ScoreMarkingResponse.
type ScoreMarkingResponse struct {
	Band       string         `json:"band"`
	Class      string         `json:"class"`
	Max        int            `json:"max"`
	Percentage float32        `json:"percentage"`
	Score      int            `json:"score"`
	Section    MarkingSection `json:"section"`
	State      MarkingState   `json:"state"`
}

// Toggle defines model for Toggle.
type Toggle struct {
	Checked  bool           `json:"checked"`
	Index    int            `json:"index"`
	Polarity TogglePolarity `json:"polarity"`
}

// TogglePolarity defines model for Toggle.Polarity.
type TogglePolarity string

// GetCaseParams defines parameters for GetCase.
type GetCaseParams struct {
	Table *string `form:"table,omitempty" json:"table,omitempty"`
}

// GetCasePageParams defines parameters for GetCasePage.
type GetCasePageParams struct {
	Table *string `form:"table,omitempty" json:"table,omitempty"`
}

// ScoreMarkingJSONRequestBody defines body for ScoreMarking for application/json ContentType.
type ScoreMarkingJSONRequestBody = ScoreMarkingRequest

// ServerInterface represents all server handlers.
type ServerInterface interface {

	// (GET /case)
	GetCase(w http.ResponseWriter, r *http.Request, params GetCaseParams)

	// (GET /case/page)
	GetCasePage(w http.ResponseWriter, r *http.Request, params GetCasePageParams)

	// (GET /cases-list-data)
	ListCases(w http.ResponseWriter, r *http.Request)

	// (GET /healthz)
	GetHealthStatus(w http.ResponseWriter, r *http.Request)

	// (POST /marking/score)
	ScoreMarking(w http.ResponseWriter, r *http.Request)

	// (GET /openapi.json)
	GetOpenAPIDocument(w http.ResponseWriter, r *http.Request)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

type MiddlewareFunc func(http.Handler) http.Handler

// GetCase operation middleware
func (siw *ServerInterfaceWrapper) GetCase(w http.ResponseWriter, r *http.Request) {

	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params GetCaseParams

	// ------------- Optional query parameter "table" -------------

	err = runtime.BindQueryParameter("form", true, false, "table", r.URL.Query(), &params.Table)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "table", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetCase(w, r, params)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// GetCasePage operation middleware
func (siw *ServerInterfaceWrapper) GetCasePage(w http.ResponseWriter, r *http.Request) {

	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params GetCasePageParams

	// ------------- Optional query parameter "table" -------------

	err = runtime.BindQueryParameter("form", true, false, "table", r.URL.Query(), &params.Table)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "table", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetCasePage(w, r, params)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// ListCases operation middleware
func (siw *ServerInterfaceWrapper) ListCases(w http.ResponseWriter, r *http.Request) {

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListCases(w, r)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// GetHealthStatus operation middleware
func (siw *ServerInterfaceWrapper) GetHealthStatus(w http.ResponseWriter, r *http.Request) {

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetHealthStatus(w, r)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// ScoreMarking operation middleware
func (siw *ServerInterfaceWrapper) ScoreMarking(w http.ResponseWriter, r *http.Request) {

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ScoreMarking(w, r)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// GetOpenAPIDocument operation middleware
func (siw *ServerInterfaceWrapper) GetOpenAPIDocument(w http.ResponseWriter, r *http.Request) {

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetOpenAPIDocument(w, r)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

type UnescapedCookieParamError struct {
	ParamName string
	Err       error
}

func (e *UnescapedCookieParamError) Error() string {
	return fmt.Sprintf("error unescaping cookie parameter '%s'", e.ParamName)
}

func (e *UnescapedCookieParamError) Unwrap() error {
	return e.Err
}

type UnmarshalingParamError struct {
	ParamName string
	Err       error
}

func (e *UnmarshalingParamError) Error() string {
	return fmt.Sprintf("Error unmarshaling parameter %s as JSON: %s", e.ParamName, e.Err.Error())
}

func (e *UnmarshalingParamError) Unwrap() error {
	return e.Err
}

type RequiredParamError struct {
	ParamName string
}

func (e *RequiredParamError) Error() string {
	return fmt.Sprintf("Query argument %s is required, but not found", e.ParamName)
}

type RequiredHeaderError struct {
	ParamName string
	Err       error
}

func (e *RequiredHeaderError) Error() string {
	return fmt.Sprintf("Header parameter %s is required, but not found", e.ParamName)
}

func (e *RequiredHeaderError) Unwrap() error {
	return e.Err
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

type TooManyValuesForParamError struct {
	ParamName string
	Count     int
}

func (e *TooManyValuesForParamError) Error() string {
	return fmt.Sprintf("Expected one value for %s, got %d", e.ParamName, e.Count)
}

// Handler creates http.Handler with routing matching OpenAPI spec.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerFromMux creates http.Handler with routing matching OpenAPI spec based on the provided mux.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseRouter: r,
	})
}

func HandlerFromMuxWithBaseURL(si ServerInterface, r chi.Router, baseURL string) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseURL:    baseURL,
		BaseRouter: r,
	})
}

// HandlerWithOptions creates http.Handler with additional options
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/case", wrapper.GetCase)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/case/page", wrapper.GetCasePage)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/cases-list-data", wrapper.ListCases)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/healthz", wrapper.GetHealthStatus)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/marking/score", wrapper.ScoreMarking)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/openapi.json", wrapper.GetOpenAPIDocument)
	})

	return r
}
