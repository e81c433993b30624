// validate-tenants — проверка файла аккаунтов перед загрузкой в хранилище.
// Валидные аккаунты печатаются в stdout как JSONL, итог — в stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Gunvolt24/wc_bronze_sync/pkg/validate"
)

func main() {
	os.Exit(run())
}

// run — 0: всё валидно или частично; 1: ошибка чтения/разбора; 2: ни одного валидного аккаунта.
func run() int {
	in := flag.String("in", "", "tenants file (.json or .jsonl); stdin as JSONL when empty")
	formatFlag := flag.String("format", string(validate.FormatAuto), "input format: auto|json|jsonl")
	flag.Parse()

	path, format := *in, validate.InputFormat(*formatFlag)
	if path == "" {
		path = "/dev/stdin"
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
	}

	summary, err := validate.ValidateFile(context.Background(), validate.NewTenantValidator(), path, format, os.Stdout)
	switch {
	case errors.Is(err, validate.ErrNoValidTenants):
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		return 2
	case err != nil:
		fmt.Fprintf(os.Stderr, "validation: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
	return 0
}
