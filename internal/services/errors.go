package services

import (
	"errors"
	"fmt"
)

// ValidationError 请求参数不合法，直接拒绝，不重试
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// DuplicateSubmissionError 作废符撞上去重集合，同一物品重复提交
type DuplicateSubmissionError struct {
	Nullifier string
}

func (e *DuplicateSubmissionError) Error() string {
	return "duplicate submission"
}

// BannedCommitmentError 承诺已被封禁，对该承诺是终态
type BannedCommitmentError struct {
	Commitment  string
	StrikeCount int
}

func (e *BannedCommitmentError) Error() string {
	return fmt.Sprintf("commitment banned after %d strikes", e.StrikeCount)
}

// StorageTimeoutError 存储层超时，所有派生都是确定性的，调用方重试安全
type StorageTimeoutError struct {
	Op  string
	Err error
}

func (e *StorageTimeoutError) Error() string {
	return fmt.Sprintf("storage timeout during %s: %v", e.Op, e.Err)
}

func (e *StorageTimeoutError) Unwrap() error {
	return e.Err
}

// ClassificationServiceError 外部分类服务失败
// 提交不会因此丢弃：上层降级为低置信度分类并强制进入人工复核
type ClassificationServiceError struct {
	Err error
}

func (e *ClassificationServiceError) Error() string {
	return fmt.Sprintf("classification service failed: %v", e.Err)
}

func (e *ClassificationServiceError) Unwrap() error {
	return e.Err
}

// IsDuplicate 判断是否为重复提交错误
func IsDuplicate(err error) bool {
	var d *DuplicateSubmissionError
	return errors.As(err, &d)
}

// IsBanned 判断是否为封禁拒绝
func IsBanned(err error) bool {
	var b *BannedCommitmentError
	return errors.As(err, &b)
}
