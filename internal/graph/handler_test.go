package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/testutil"
)

type noopMailer struct{}

func (noopMailer) SendResetCode(to, code string) error { return nil }

// fakeUploader returns a deterministic URL instead of talking to a bucket.
type fakeUploader struct {
	lastFilename    string
	lastContentType string
}

func (u *fakeUploader) Upload(ctx context.Context, r io.Reader, size int64, filename, contentType, folder string) (string, error) {
	u.lastFilename = filename
	u.lastContentType = contentType
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return "https://cdn.test/" + folder + "/" + filename, nil
}

type testServer struct {
	router   *gin.Engine
	uploader *fakeUploader
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	uploader := &fakeUploader{}
	categoryService := services.NewCategoryService(db)
	schema, err := NewSchema(&Resolver{
		Auth:         services.NewAuthService(db, noopMailer{}),
		Users:        services.NewUserService(db),
		Categories:   categoryService,
		Transactions: services.NewTransactionService(db, categoryService),
		Storage:      uploader,
	})
	if err != nil {
		t.Fatalf("failed to build schema: %v", err)
	}

	router := gin.New()
	router.POST("/graphql", middleware.Auth(), Handler(schema))
	return &testServer{router: router, uploader: uploader}
}

func (s *testServer) do(t *testing.T, token, query string, variables map[string]interface{}) map[string]interface{} {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out
}

func (s *testServer) register(t *testing.T, email string) (token string, userID string) {
	t.Helper()

	result := s.do(t, "", `
		mutation Register($data: RegisterInput!) {
			register(data: $data) { token refreshToken user { id email } }
		}`,
		map[string]interface{}{
			"data": map[string]interface{}{
				"name":     "Test User",
				"email":    email,
				"password": "password123",
			},
		})

	payload := dig(t, result, "data", "register")
	user := payload["user"].(map[string]interface{})
	return payload["token"].(string), user["id"].(string)
}

// dig walks nested response objects, failing the test on a missing key.
func dig(t *testing.T, m map[string]interface{}, keys ...string) map[string]interface{} {
	t.Helper()
	for _, key := range keys {
		next, ok := m[key].(map[string]interface{})
		if !ok {
			t.Fatalf("expected object at %q, got %v", key, m[key])
		}
		m = next
	}
	return m
}

func errorCode(t *testing.T, result map[string]interface{}) string {
	t.Helper()
	errs, ok := result["errors"].([]interface{})
	if !ok || len(errs) == 0 {
		t.Fatalf("expected errors in response, got %v", result)
	}
	first := errs[0].(map[string]interface{})
	ext := first["extensions"].(map[string]interface{})
	code, _ := ext["code"].(string)
	return code
}

func TestRegisterAndLogin(t *testing.T) {
	s := setupServer(t)

	token, userID := s.register(t, "graph.register@test.com")
	if token == "" || userID == "" {
		t.Fatal("expected token and user id from register")
	}

	result := s.do(t, "", `
		mutation Login($data: LoginInput!) {
			login(data: $data) { token user { id email } }
		}`,
		map[string]interface{}{
			"data": map[string]interface{}{
				"email":    "graph.register@test.com",
				"password": "password123",
			},
		})

	payload := dig(t, result, "data", "login")
	if payload["token"].(string) == "" {
		t.Error("expected non-empty login token")
	}
	user := payload["user"].(map[string]interface{})
	if user["id"] != userID {
		t.Errorf("expected user %s, got %v", userID, user["id"])
	}
}

func TestCategoryAndTransactionFlow(t *testing.T) {
	s := setupServer(t)
	token, _ := s.register(t, "graph.flow@test.com")

	// Create a category.
	result := s.do(t, token, `
		mutation CreateCategory($data: CreateCategoryInput!) {
			createCategory(data: $data) { id title color icon }
		}`,
		map[string]interface{}{
			"data": map[string]interface{}{
				"title": "Groceries",
				"icon":  "ShoppingCart",
				"color": "GREEN",
			},
		})
	category := dig(t, result, "data", "createCategory")
	categoryID := category["id"].(string)
	if category["color"] != "GREEN" {
		t.Errorf("expected enum color GREEN, got %v", category["color"])
	}

	// Create two transactions in it.
	for i, amount := range []int{2500, 1000} {
		result = s.do(t, token, `
			mutation CreateTransaction($categoryId: String!, $data: CreateTransactionInput!) {
				createTransaction(categoryId: $categoryId, data: $data) { id amount type }
			}`,
			map[string]interface{}{
				"categoryId": categoryID,
				"data": map[string]interface{}{
					"description": fmt.Sprintf("Purchase %d", i),
					"type":        "expense",
					"amount":      amount,
					"date":        "2026-08-15T12:00:00Z",
				},
			})
		tx := dig(t, result, "data", "createTransaction")
		if tx["type"] != "expense" {
			t.Errorf("expected type expense, got %v", tx["type"])
		}
	}

	// List them with a category filter.
	result = s.do(t, token, `
		query List($filters: GetTransactionsFilterInput) {
			listTransactions(limit: 1, filters: $filters) {
				totalCount
				items { id amount category { id title } }
			}
		}`,
		map[string]interface{}{
			"filters": map[string]interface{}{"categoryId": categoryID},
		})
	page := dig(t, result, "data", "listTransactions")
	if page["totalCount"].(float64) != 2 {
		t.Errorf("expected totalCount 2, got %v", page["totalCount"])
	}
	items := page["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 item with limit 1, got %d", len(items))
	}
	itemCategory := items[0].(map[string]interface{})["category"].(map[string]interface{})
	if itemCategory["id"] != categoryID {
		t.Errorf("expected resolved category %s, got %v", categoryID, itemCategory["id"])
	}

	// Category field resolvers.
	result = s.do(t, token, `
		query { listCategories { id transactionCount } }`, nil)
	categories := dig(t, result, "data")["listCategories"].([]interface{})
	if len(categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(categories))
	}
	if categories[0].(map[string]interface{})["transactionCount"].(float64) != 2 {
		t.Errorf("expected transactionCount 2, got %v", categories[0].(map[string]interface{})["transactionCount"])
	}

	// Aggregations.
	result = s.do(t, token, `
		query { balanceSummary { balance monthIncome monthExpense } }`, nil)
	balance := dig(t, result, "data", "balanceSummary")
	if balance["balance"].(float64) != -3500 {
		t.Errorf("expected balance -3500, got %v", balance["balance"])
	}

	result = s.do(t, token, `
		query { categorySummary { count totalAmount category { id } } }`, nil)
	entries := dig(t, result, "data")["categorySummary"].([]interface{})
	if len(entries) != 1 {
		t.Fatalf("expected 1 summary entry, got %d", len(entries))
	}
	entry := entries[0].(map[string]interface{})
	if entry["count"].(float64) != 2 {
		t.Errorf("expected count 2, got %v", entry["count"])
	}
	if entry["totalAmount"].(float64) != -3500 {
		t.Errorf("expected totalAmount -3500, got %v", entry["totalAmount"])
	}

	// Delete the category.
	result = s.do(t, token, `
		mutation Delete($id: String!) { deleteCategory(id: $id) }`,
		map[string]interface{}{"id": categoryID})
	if dig(t, result, "data")["deleteCategory"] != true {
		t.Error("expected deleteCategory to return true")
	}
}

func TestUnauthenticatedOperationRejected(t *testing.T) {
	s := setupServer(t)

	result := s.do(t, "", `
		mutation {
			createCategory(data: {title: "X", icon: "ShoppingCart", color: BLUE}) { id }
		}`, nil)

	if code := errorCode(t, result); code != "UNAUTHENTICATED" {
		t.Errorf("expected UNAUTHENTICATED, got %s", code)
	}
}

func TestInvalidBearerTokenRejectedAtGateway(t *testing.T) {
	s := setupServer(t)

	body := []byte(`{"query":"query { listCategories { id } }"}`)
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer not-a-token")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestErrorExtensionsCarryCode(t *testing.T) {
	s := setupServer(t)
	token, _ := s.register(t, "graph.errors@test.com")

	result := s.do(t, token, `
		query Get($id: String!) { getCategory(id: $id) { id } }`,
		map[string]interface{}{"id": "00000000-0000-0000-0000-000000000000"})

	if code := errorCode(t, result); code != "CATEGORY_NOT_FOUND" {
		t.Errorf("expected CATEGORY_NOT_FOUND, got %s", code)
	}
}

func TestForeignCategoryRejected(t *testing.T) {
	s := setupServer(t)
	ownerToken, _ := s.register(t, "graph.owner@test.com")
	otherToken, _ := s.register(t, "graph.other@test.com")

	result := s.do(t, ownerToken, `
		mutation {
			createCategory(data: {title: "Private", icon: "ShoppingCart", color: RED}) { id }
		}`, nil)
	categoryID := dig(t, result, "data", "createCategory")["id"].(string)

	result = s.do(t, otherToken, `
		mutation Create($categoryId: String!, $data: CreateTransactionInput!) {
			createTransaction(categoryId: $categoryId, data: $data) { id }
		}`,
		map[string]interface{}{
			"categoryId": categoryID,
			"data": map[string]interface{}{
				"description": "Sneaky",
				"type":        "expense",
				"amount":      100,
				"date":        "2026-08-15T12:00:00Z",
			},
		})

	if code := errorCode(t, result); code != "NOT_OWNER" {
		t.Errorf("expected NOT_OWNER, got %s", code)
	}
}

func TestUpdateProfile(t *testing.T) {
	s := setupServer(t)
	token, _ := s.register(t, "graph.profile@test.com")

	result := s.do(t, token, `
		mutation Update($data: UpdateUserInput!) {
			updateProfile(data: $data) { user { name } }
		}`,
		map[string]interface{}{
			"data": map[string]interface{}{"name": "Renamed"},
		})

	user := dig(t, result, "data", "updateProfile", "user")
	if user["name"] != "Renamed" {
		t.Errorf("expected renamed user, got %v", user["name"])
	}
}

func TestAvatarUploadMultipart(t *testing.T) {
	s := setupServer(t)
	token, _ := s.register(t, "graph.avatar@test.com")

	operations := `{"query":"mutation Update($data: UpdateUserInput!) { updateProfile(data: $data) { user { avatarUrl } } }","variables":{"data":{"avatar":null}}}`
	fileMap := `{"0":["variables.data.avatar"]}`

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("operations", operations); err != nil {
		t.Fatalf("failed to write operations: %v", err)
	}
	if err := writer.WriteField("map", fileMap); err != nil {
		t.Fatalf("failed to write map: %v", err)
	}
	part, err := writer.CreateFormFile("0", "avatar.png")
	if err != nil {
		t.Fatalf("failed to create file part: %v", err)
	}
	if _, err := part.Write([]byte("fake png bytes")); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/graphql", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	user := dig(t, out, "data", "updateProfile", "user")
	if user["avatarUrl"] != "https://cdn.test/avatars/avatar.png" {
		t.Errorf("expected uploaded avatar URL, got %v", user["avatarUrl"])
	}
	if s.uploader.lastFilename != "avatar.png" {
		t.Errorf("expected uploader to receive avatar.png, got %s", s.uploader.lastFilename)
	}
}
