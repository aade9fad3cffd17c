package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
)

// Encoding codificación de salida del CSV.
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"
	EncodingWindows1252 Encoding = "windows-1252" // Excel en Windows abre esta sin asistente
)

// ParseEncoding acepta vacío (utf-8), "utf-8"/"utf8" y "windows-1252"/"cp1252".
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "windows-1252", "cp1252":
		return EncodingWindows1252, nil
	}
	return "", fmt.Errorf("codificación no soportada: %q", s)
}

// ProductsCSV escribe cabecera + una fila por producto.
// En Windows-1252 los caracteres sin representación se reemplazan en lugar de fallar.
func ProductsCSV(products []*entity.Product, enc Encoding) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ProductHeaders); err != nil {
		return nil, fmt.Errorf("csv: cabecera: %w", err)
	}
	for _, p := range products {
		if err := w.Write(ProductRecord(p)); err != nil {
			return nil, fmt.Errorf("csv: fila %s: %w", p.SKU, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}

	if enc != EncodingWindows1252 {
		return buf.Bytes(), nil
	}
	out, err := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).Bytes(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("csv: windows-1252: %w", err)
	}
	return out, nil
}

// ContentType valor de Content-Type para la codificación.
func (e Encoding) ContentType() string {
	if e == EncodingWindows1252 {
		return "text/csv; charset=windows-1252"
	}
	return "text/csv"
}
