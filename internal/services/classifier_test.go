package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestClassify(t *testing.T) {
	// 模拟分类服务
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Expected Bearer test-token, got %s", r.Header.Get("Authorization"))
		}

		var req ClassifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.ContentHash == "" {
			t.Errorf("Expected content hash in request")
		}

		json.NewEncoder(w).Encode(ClassifyResponse{Label: "recyclable", Confidence: 0.92})
	}))
	defer server.Close()

	// 设置环境变量并重置单例以重新加载配置
	os.Setenv("CLASSIFIER_BASE_URL", server.URL)
	os.Setenv("CLASSIFIER_TOKEN", "test-token")
	os.Setenv("CLASSIFIER_MODEL", "test-model")
	classifierService = nil
	s := GetClassifierService()

	hash := "1111111111111111111111111111111111111111111111111111111111111111"
	label, confidence, err := s.Classify(hash, "recyclable")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if label != "recyclable" {
		t.Errorf("Expected recyclable, got %s", label)
	}
	if confidence != 0.92 {
		t.Errorf("Expected confidence 0.92, got %f", confidence)
	}

	// 结果按内容哈希缓存：服务下线后同一哈希仍能命中
	server.Close()
	label, _, err = s.Classify(hash, "recyclable")
	if err != nil {
		t.Fatalf("Expected cached result after server close, got %v", err)
	}
	if label != "recyclable" {
		t.Errorf("Expected cached recyclable, got %s", label)
	}
}

func TestClassifyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	os.Setenv("CLASSIFIER_BASE_URL", server.URL)
	classifierService = nil
	s := GetClassifierService()

	hash := "2222222222222222222222222222222222222222222222222222222222222222"
	_, _, err := s.Classify(hash, "litter")
	var cErr *ClassificationServiceError
	if !errors.As(err, &cErr) {
		t.Errorf("Expected ClassificationServiceError, got %v", err)
	}
}

func TestClassifyUnconfigured(t *testing.T) {
	os.Unsetenv("CLASSIFIER_BASE_URL")
	classifierService = nil
	s := GetClassifierService()

	hash := "3333333333333333333333333333333333333333333333333333333333333333"
	if _, _, err := s.Classify(hash, "litter"); err == nil {
		t.Errorf("Expected error when classifier is not configured")
	}
}
