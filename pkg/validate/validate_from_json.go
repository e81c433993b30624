package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
)

// DecodeTenant — строгий разбор одного аккаунта (неизвестные поля запрещены).
func DecodeTenant(raw []byte) (domain.TenantConfig, error) {
	var tenant domain.TenantConfig
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tenant); err != nil {
		return domain.TenantConfig{}, fmt.Errorf("invalid json: %w", err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return domain.TenantConfig{}, fmt.Errorf("invalid json: trailing data")
	}
	return tenant, nil
}

// ValidateTenantFromJSON — разбор и валидация аккаунта из JSON.
func ValidateTenantFromJSON(ctx context.Context, validator ports.TenantValidator, raw []byte) (*domain.TenantConfig, error) {
	tenant, err := DecodeTenant(raw)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(ctx, tenant); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// decodeTenantDocument — JSON-документ: массив аккаунтов или один объект.
func decodeTenantDocument(raw []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		return items, nil
	}
	return []json.RawMessage{trimmed}, nil
}
