package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medtrace/medtrace-backend/internal/data/repos/account"
	"github.com/medtrace/medtrace-backend/internal/data/repos/chain"
	"github.com/medtrace/medtrace-backend/internal/data/repos/testutil"
	"github.com/medtrace/medtrace-backend/internal/http/handlers"
	"github.com/medtrace/medtrace-backend/internal/http/middleware"
	"github.com/medtrace/medtrace-backend/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)

	accountRepo := account.NewAccountRepo(db, log)
	materialRepo := chain.NewMaterialRepo(db, log)
	productRepo := chain.NewProductRepo(db, log)
	shipmentRepo := chain.NewShipmentRepo(db, log)
	saleRepo := chain.NewSaleRepo(db, log)

	authSvc := services.NewAuthService(db, log, accountRepo, "test-secret", time.Hour)
	labelSvc, err := services.NewLabelService(log, "http://localhost:4200", "", "")
	if err != nil {
		t.Fatalf("NewLabelService: %v", err)
	}
	chainSvc := services.NewChainService(db, log, accountRepo, materialRepo, productRepo, shipmentRepo, saleRepo, labelSvc)
	provSvc := services.NewProvenanceService(db, log, materialRepo, productRepo, shipmentRepo, saleRepo)

	return NewRouter(RouterConfig{
		Log:               log,
		AllowedOrigins:    []string{"http://localhost:4200"},
		AuthMiddleware:    middleware.NewAuthMiddleware(log, authSvc),
		HealthHandler:     handlers.NewHealthHandler(),
		AuthHandler:       handlers.NewAuthHandler(authSvc),
		ChainHandler:      handlers.NewChainHandler(chainSvc),
		ProvenanceHandler: handlers.NewProvenanceHandler(provSvc),
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func register(t *testing.T, r *gin.Engine, email, phone, role string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"first_name":       "Test",
		"last_name":        "User",
		"email":            email,
		"phone":            phone,
		"password":         "pw123456",
		"confirm_password": "pw123456",
		"role":             role,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register %s: status %d body %s", email, w.Code, w.Body.String())
	}
}

func login(t *testing.T, r *gin.Engine, identifier string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"identifier": identifier,
		"password":   "pw123456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", identifier, w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["access_token"].(string)
	if token == "" {
		t.Fatalf("login %s: no access_token in %s", identifier, w.Body.String())
	}
	return token
}

func TestHealthcheck(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/healthcheck", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/materials", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/materials", "garbage-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", w.Code)
	}
}

func TestEndToEndChainOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	register(t, r, "producer@acme.test", "+100", "Producer")
	register(t, r, "distributor@acme.test", "+200", "Distributor")
	register(t, r, "retailer@acme.test", "+300", "Retailer")

	producerTok := login(t, r, "producer@acme.test")
	distributorTok := login(t, r, "distributor@acme.test")
	retailerTok := login(t, r, "retailer@acme.test")

	// Role gates.
	if w := doJSON(t, r, http.MethodPost, "/api/producer", producerTok, nil); w.Code != http.StatusOK {
		t.Fatalf("producer gate: status %d body %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodPost, "/api/retailer", producerTok, nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong role gate, got %d", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/materials", producerTok, gin.H{
		"material_kind": "paracetamol base",
		"quantity":      120.5,
		"origin":        "Pune",
		"supply_date":   "2024-03-15",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create material: status %d body %s", w.Code, w.Body.String())
	}
	material := decodeBody(t, w)
	materialID := material["id"].(float64)
	if label, _ := material["label"].(string); !strings.HasPrefix(label, "data:image/png;base64,") {
		t.Fatalf("material label missing: %v", material["label"])
	}

	// Wrong role on a write is rejected before any insert.
	if w := doJSON(t, r, http.MethodPost, "/api/materials", retailerTok, gin.H{
		"material_kind": "x", "quantity": 1, "origin": "y", "supply_date": "2024-03-15",
	}); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for retailer material, got %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/products", producerTok, gin.H{
		"material_id":  materialID,
		"name":         "Paracetamol 500mg",
		"batch_number": "B-1001",
		"produced_on":  "2024-04-01",
		"expires_on":   "2026-04-01",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create product: status %d body %s", w.Code, w.Body.String())
	}
	productID := decodeBody(t, w)["id"].(float64)

	w = doJSON(t, r, http.MethodPost, "/api/shipments", distributorTok, gin.H{
		"product_id":        productID,
		"shipped_on":        "2024-04-10",
		"transport_mode":    "road",
		"destination":       "Mumbai",
		"storage_condition": "below 25C",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create shipment: status %d body %s", w.Code, w.Body.String())
	}
	shipmentID := decodeBody(t, w)["id"].(float64)

	w = doJSON(t, r, http.MethodPost, "/api/sales", retailerTok, gin.H{
		"shipment_id": shipmentID,
		"received_on": "2024-04-20",
		"price":       49.90,
		"location":    "Colaba Pharmacy",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create sale: status %d body %s", w.Code, w.Body.String())
	}

	// Fully consumed chain: availability lists are empty.
	for _, path := range []string{"/api/materials", "/api/products", "/api/shipments"} {
		w = doJSON(t, r, http.MethodGet, path, producerTok, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: status %d", path, w.Code)
		}
		var list []any
		if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
			t.Fatalf("GET %s: decode %q: %v", path, w.Body.String(), err)
		}
		if len(list) != 0 {
			t.Fatalf("GET %s: expected empty list, got %s", path, w.Body.String())
		}
	}

	// Provenance, both the protected and the public consumer route.
	for _, path := range []string{
		fmt.Sprintf("/api/chain/%d", int(productID)),
		fmt.Sprintf("/consumer/%d", int(productID)),
	} {
		token := producerTok
		if strings.HasPrefix(path, "/consumer/") {
			token = ""
		}
		w = doJSON(t, r, http.MethodGet, path, token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: status %d body %s", path, w.Code, w.Body.String())
		}
		history := decodeBody(t, w)
		if history["medicine"] == nil || history["material"] == nil {
			t.Fatalf("GET %s: incomplete history %s", path, w.Body.String())
		}
	}
}

func TestChainNotFoundAndBadID(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/consumer/9999", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", w.Code)
	}
	body := decodeBody(t, w)
	errObj, _ := body["error"].(map[string]any)
	if errObj == nil || errObj["code"] != "not_found" {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/consumer/abc", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", w.Code)
	}
}

func TestRegisterDuplicateAndLoginFailure(t *testing.T) {
	r := newTestRouter(t)
	register(t, r, "maria@acme.test", "+100", "Producer")

	w := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"first_name": "Dup", "last_name": "User",
		"email": "maria@acme.test", "phone": "+999",
		"password": "pw123456", "confirm_password": "pw123456",
		"role": "Retailer",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"identifier": "maria@acme.test",
		"password":   "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", w.Code)
	}
}
