// internal/api/api_test.go
package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floritflats/opsboard/internal/amenity"
	"github.com/floritflats/opsboard/internal/domain"
	"github.com/floritflats/opsboard/internal/masters"
	"github.com/floritflats/opsboard/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func testRouter() *gin.Engine {
	return testRouterWithObjective("")
}

func testRouterWithObjective(defaultObjective string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := &masters.Masters{
		Apartments: []domain.Apartment{
			{Apartamento: "APOLO 29", Zona: "CENTRO", Almacen: "ALM CENTRO", CafeTipo: "Tassimo"},
		},
		Thresholds: amenity.DefaultThresholds(),
	}
	svc := service.NewReportService(m, nil, nil, nil)
	return NewRouter(&Services{
		ReportService:    svc,
		DefaultDays:      3,
		DefaultObjective: defaultObjective,
	}, nil)
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, content := range files {
		fw, err := w.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

var (
	avantioCSV = []byte("Alojamiento,Fecha entrada,Fecha salida\n" +
		"APOLO 29,10/06/2026 14:00,12/06/2026 10:00\n")
	stockCSV = []byte("Ubicación,Producto,Cantidad\n" +
		"ALM CENTRO,Gel de ducha,1\n")
)

func TestHealth(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateReportJSON(t *testing.T) {
	router := testRouter()

	body, contentType := multipartBody(t, map[string][]byte{"avantio": avantioCSV, "stock": stockCSV})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports?start=2026-06-10&days=2", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report domain.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "operativa_20260610_20260611.xlsx", report.WorkbookName)
	assert.Len(t, report.Operativa, 2)
	assert.Equal(t, 1, report.KPIs.Entradas)
}

func TestGenerateReportXLSX(t *testing.T) {
	router := testRouter()

	body, contentType := multipartBody(t, map[string][]byte{"avantio": avantioCSV, "stock": stockCSV})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports?start=2026-06-10&format=xlsx", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "operativa_20260610_")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestGenerateReportConfiguredObjectiveDefault(t *testing.T) {
	router := testRouterWithObjective("min")

	// no objective param: the configured default applies
	body, contentType := multipartBody(t, map[string][]byte{"avantio": avantioCSV, "stock": stockCSV})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports?start=2026-06-10", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report domain.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	for _, row := range report.Grid {
		if row.Key != domain.AmenityGelDucha {
			continue
		}
		// stock 1, min 2, max 6: the min objective tops up to 2, not 6
		assert.Equal(t, 1.0, row.AReponer)
		return
	}
	t.Fatal("shower gel row missing from grid")
}

func TestGenerateReportMissingFile(t *testing.T) {
	router := testRouter()

	body, contentType := multipartBody(t, map[string][]byte{"avantio": avantioCSV})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateReportBadParams(t *testing.T) {
	router := testRouter()

	for _, query := range []string{"days=0", "days=99", "start=junio", "objective=media", "urgent_only=quizas"} {
		body, contentType := multipartBody(t, map[string][]byte{"avantio": avantioCSV, "stock": stockCSV})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reports?"+query, body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", query)
	}
}

func TestGenerateReportColumnMismatch(t *testing.T) {
	router := testRouter()

	bad := []byte("Alojamiento,Noches\nAPOLO 29,2\n")
	body, contentType := multipartBody(t, map[string][]byte{"avantio": bad, "stock": stockCSV})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Fecha entrada")
}

func TestLatestReportWithoutCache(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/latest", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidateLatestReport(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reports/latest", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLastCleaningView(t *testing.T) {
	router := testRouter()

	form := []byte("Marca temporal,Apartamento,LLAVES,OTRAS REPOSICIONES,INCIDENCIAS/TAREAS A REALIZAR\n" +
		"10/06/2026 09:00:00,APOLO 29,OK,,Nada\n")
	body, contentType := multipartBody(t, map[string][]byte{"report": form})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cleaning/last-report", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var view []domain.LastCleaningReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Len(t, view, 1)
	assert.Equal(t, "APOLO 29", view[0].Apartamento)
}
