package vendorsync

import (
	"encoding/csv"
	"fmt"
	"strings"
	"unicode"

	"catalog-reconciler/core/reconcile"
)

// Column names understood by HeaderMapper.
const (
	ColUPC         = "upc"
	ColSKU         = "sku"
	ColCost        = "cost"
	ColMAP         = "map"
	ColMSRP        = "msrp"
	ColQuantity    = "quantity"
	ColName        = "name"
	ColBrand       = "brand"
	ColModel       = "model"
	ColMPN         = "mpn"
	ColDescription = "description"
	ColImageURL    = "image_url"
	ColCategory    = "category"
	ColSubcategory = "subcategory"
)

// DefaultAliases maps normalized header text to column names.
var DefaultAliases = map[string]string{
	"upc": ColUPC, "upccode": ColUPC, "barcode": ColUPC, "gtin": ColUPC, "ean": ColUPC,
	"sku": ColSKU, "itemnumber": ColSKU, "itemno": ColSKU, "item": ColSKU, "vendorsku": ColSKU,
	"cost": ColCost, "price": ColCost, "dealerprice": ColCost, "dealercost": ColCost, "yourprice": ColCost,
	"map": ColMAP, "mapprice": ColMAP, "minimumadvertisedprice": ColMAP,
	"msrp": ColMSRP, "retail": ColMSRP, "retailprice": ColMSRP, "listprice": ColMSRP,
	"quantity": ColQuantity, "qty": ColQuantity, "quantityavailable": ColQuantity,
	"inventory": ColQuantity, "stock": ColQuantity, "onhand": ColQuantity, "available": ColQuantity,
	"name": ColName, "title": ColName, "productname": ColName, "itemdescription": ColName,
	"brand": ColBrand, "manufacturer": ColBrand, "manufacturername": ColBrand,
	"model": ColModel,
	"mpn": ColMPN, "manufacturerpartnumber": ColMPN, "mfgpartnumber": ColMPN, "partnumber": ColMPN,
	"description": ColDescription, "longdescription": ColDescription,
	"imageurl": ColImageURL, "image": ColImageURL, "imagelink": ColImageURL,
	"category": ColCategory, "department": ColCategory,
	"subcategory": ColSubcategory,
}

// HeaderMapper splits delimited feed lines into reconcile rows using the
// header line to locate columns.
type HeaderMapper struct {
	delimiter   rune
	aliases     map[string]string
	imageSource string
}

// NewHeaderMapper creates a mapper. A zero delimiter means ','. Extra aliases
// are merged over DefaultAliases.
func NewHeaderMapper(delimiter rune, extra map[string]string) *HeaderMapper {
	if delimiter == 0 {
		delimiter = ','
	}
	aliases := make(map[string]string, len(DefaultAliases)+len(extra))
	for k, v := range DefaultAliases {
		aliases[k] = v
	}
	for k, v := range extra {
		aliases[normalizeHeader(k)] = v
	}
	return &HeaderMapper{delimiter: delimiter, aliases: aliases}
}

// WithImageSource sets the image source recorded with proposed image URLs.
func (m *HeaderMapper) WithImageSource(source string) *HeaderMapper {
	m.imageSource = source
	return m
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, h)
}

// MapResult is the output of HeaderMapper.Map.
type MapResult struct {
	Rows []reconcile.VendorRow
	// ParseErrors counts lines that could not be split into fields.
	ParseErrors int
}

// Map converts lines, whose first element is the header, into rows. It fails
// only when the header has no UPC column.
func (m *HeaderMapper) Map(lines []string) (MapResult, error) {
	var res MapResult
	if len(lines) == 0 {
		return res, nil
	}

	header, err := m.split(lines[0])
	if err != nil {
		return res, fmt.Errorf("parse header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		if col, ok := m.aliases[normalizeHeader(h)]; ok {
			if _, seen := index[col]; !seen {
				index[col] = i
			}
		}
	}
	if _, ok := index[ColUPC]; !ok {
		return res, fmt.Errorf("header has no UPC column: %q", lines[0])
	}

	res.Rows = make([]reconcile.VendorRow, 0, len(lines)-1)
	for i, line := range lines[1:] {
		fields, err := m.split(line)
		if err != nil {
			res.ParseErrors++
			continue
		}
		get := func(col string) string {
			if idx, ok := index[col]; ok && idx < len(fields) {
				return strings.TrimSpace(fields[idx])
			}
			return ""
		}

		row := reconcile.VendorRow{
			Line:     i + 2,
			UPC:      get(ColUPC),
			SKU:      get(ColSKU),
			Cost:     get(ColCost),
			MAP:      get(ColMAP),
			MSRP:     get(ColMSRP),
			Quantity: get(ColQuantity),
		}
		master := reconcile.MasterFields{
			Name:                   get(ColName),
			Brand:                  get(ColBrand),
			Model:                  get(ColModel),
			ManufacturerPartNumber: get(ColMPN),
			Description:            get(ColDescription),
			ImageURL:               get(ColImageURL),
			Category:               get(ColCategory),
			Subcategory:            get(ColSubcategory),
		}
		if master.ImageURL != "" {
			master.ImageSource = m.imageSource
		}
		if !master.IsZero() {
			row.Master = &master
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

func (m *HeaderMapper) split(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = m.delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.Read()
}
