package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"greensnap/internal/utils"
)

// ClassifierService 外部 CNN 分类服务的客户端
// 服务本体是外部协作方，这里只消费 (label, confidence) 窄接口
type ClassifierService struct {
	baseURL string
	token   string
	model   string
	client  *http.Client
}

var classifierService *ClassifierService

// GetClassifierService 获取单例分类客户端
func GetClassifierService() *ClassifierService {
	if classifierService == nil {
		classifierService = &ClassifierService{
			baseURL: os.Getenv("CLASSIFIER_BASE_URL"),
			token:   os.Getenv("CLASSIFIER_TOKEN"),
			model:   os.Getenv("CLASSIFIER_MODEL"),
			client:  &http.Client{Timeout: 10 * time.Second},
		}
	}
	return classifierService
}

// ClassifyRequest 分类请求体
type ClassifyRequest struct {
	Model        string `json:"model,omitempty"`
	ContentHash  string `json:"content_hash"`
	ClaimedLabel string `json:"claimed_label"`
}

// ClassifyResponse 分类结果
type ClassifyResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classify 对提交内容做分类，返回预测标签和置信度
// 同一内容哈希的结果是确定的，按哈希缓存 10 分钟
// 失败时返回 ClassificationServiceError，由提交管道降级处理，不丢弃提交
func (s *ClassifierService) Classify(contentHash, claimedLabel string) (string, float64, error) {
	cacheKey := "classify:" + contentHash
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if resp, ok := cached.(ClassifyResponse); ok {
			return resp.Label, resp.Confidence, nil
		}
	}

	if s.baseURL == "" {
		return "", 0, &ClassificationServiceError{Err: errors.New("classifier not configured")}
	}

	reqBody, err := json.Marshal(ClassifyRequest{
		Model:        s.model,
		ContentHash:  contentHash,
		ClaimedLabel: claimedLabel,
	})
	if err != nil {
		return "", 0, &ClassificationServiceError{Err: err}
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/v1/classify", bytes.NewReader(reqBody))
	if err != nil {
		return "", 0, &ClassificationServiceError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	httpResp, err := s.client.Do(req)
	if err != nil {
		return "", 0, &ClassificationServiceError{Err: err}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return "", 0, &ClassificationServiceError{
			Err: fmt.Errorf("classifier returned status %d", httpResp.StatusCode),
		}
	}

	var resp ClassifyResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return "", 0, &ClassificationServiceError{Err: err}
	}

	utils.GetCache().Set(cacheKey, resp, 10*time.Minute)
	return resp.Label, resp.Confidence, nil
}
