package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
)

// InputFormat — формат файла аккаунтов.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"  // объект или массив объектов
	FormatJSONL InputFormat = "jsonl" // по аккаунту в строке
)

// ErrNoValidTenants — в файле нет ни одного валидного аккаунта.
var ErrNoValidTenants = errors.New("no valid tenants")

// Result — итог проверки файла.
type Result struct {
	Valid   int
	Invalid int
}

func (r Result) String() string {
	return fmt.Sprintf("%d valid / %d invalid", r.Valid, r.Invalid)
}

// ResolveFormat — auto по расширению (.jsonl → jsonl, остальное → json).
func ResolveFormat(filePath string, format InputFormat) InputFormat {
	if format != FormatAuto && format != "" {
		return format
	}
	if strings.EqualFold(filepath.Ext(filePath), ".jsonl") {
		return FormatJSONL
	}
	return FormatJSON
}

// ValidateFile — проверяет каждый аккаунт файла и пишет валидные в ow как JSONL (канонический JSON).
// Невалидная запись не прерывает проверку; ErrNoValidTenants — если не прошла ни одна.
func ValidateFile(ctx context.Context, validator ports.TenantValidator, filePath string, format InputFormat, ow io.Writer) (string, error) {
	var res Result
	err := eachRecord(filePath, format, func(raw []byte) error {
		tenant, err := ValidateTenantFromJSON(ctx, validator, raw)
		if err != nil {
			res.Invalid++
			return nil
		}
		if err := writeLine(ow, tenant); err != nil {
			return err
		}
		res.Valid++
		return nil
	})
	switch {
	case err != nil:
		return res.String(), err
	case res.Valid == 0 && res.Invalid > 0:
		return res.String(), ErrNoValidTenants
	default:
		return res.String(), nil
	}
}

// LoadTenantsFile — все аккаунты файла без валидации (её делает оркестратор).
// Ошибка разбора любой записи — ошибка загрузки.
func LoadTenantsFile(filePath string, format InputFormat) ([]domain.TenantConfig, error) {
	var tenants []domain.TenantConfig
	err := eachRecord(filePath, format, func(raw []byte) error {
		tenant, err := DecodeTenant(raw)
		if err != nil {
			return fmt.Errorf("tenant #%d: %w", len(tenants)+1, err)
		}
		tenants = append(tenants, tenant)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tenants, nil
}

// eachRecord — вызывает fn для каждой записи файла; первая ошибка fn останавливает обход.
func eachRecord(filePath string, format InputFormat, fn func(raw []byte) error) error {
	format = ResolveFormat(filePath, format)
	if format != FormatJSON && format != FormatJSONL {
		return fmt.Errorf("unsupported format: %s", format)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	if format == FormatJSONL {
		return scanLines(file, fn)
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	items, err := decodeTenantDocument(raw)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := fn(item); err != nil {
			return err
		}
	}
	return nil
}

// scanLines — непустые строки потока (до 10 МБ на строку).
func scanLines(r io.Reader, fn func(line []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	return nil
}

func writeLine(w io.Writer, v any) error {
	line, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if _, err := w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write valid line: %w", err)
	}
	return nil
}
