package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"worldbridge/pkg/api"
	"worldbridge/pkg/logger"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}

	var err error
	switch os.Args[1] {
	case "schema":
		err = printSchema(os.Stdout, os.Args[2])
	case "check":
		if len(os.Args) < 4 {
			fmt.Println("Usage: wiretool check <snapshot|event> <file.json>")
			return
		}
		err = checkFile(os.Stdout, os.Args[2], os.Args[3])
	default:
		printHelp()
		return
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printSchema(out io.Writer, record string) error {
	schema, err := api.Schema(record)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(schema)
}

// checkFile декодирует запись с диска и проверяет ее.
// Неизвестная версия - только предупреждение, как у живых потребителей.
func checkFile(out io.Writer, record, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return check(out, record, data)
}

func check(out io.Writer, record string, data []byte) error {
	warn := func(kind, v string) {
		logger.Log.WithFields(logrus.Fields{
			"record":   kind,
			"version":  v,
			"expected": api.ProtocolVersion,
		}).Warn("Unknown protocol version, decoded best-effort")
	}

	var v api.Validator
	switch record {
	case api.RecordSnapshot:
		s, err := api.DecodeSnapshot(data, warn)
		if err != nil {
			return err
		}
		v = s
	case api.RecordEvent:
		e, err := api.DecodeEvent(data, warn)
		if err != nil {
			return err
		}
		v = e
	default:
		return fmt.Errorf("unknown record %q", record)
	}

	if err := v.Validate(); err != nil {
		return fmt.Errorf("invalid %s: %w", record, err)
	}
	fmt.Fprintf(out, "%s ok\n", record)
	return nil
}

func printHelp() {
	fmt.Println(`Wire Tool - записи протокола мира
Commands:
  schema <snapshot|event>        - JSON-схема записи
  check <snapshot|event> <file>  - декодировать и проверить запись из файла`)
}
