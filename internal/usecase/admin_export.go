package usecase

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/i18n"

	"github.com/tealeg/xlsx"
)

const ProductExportSheet = "Products"

var productExportHeaders = []string{
	"ID", "NameEN", "NameAR", "DescriptionEN", "DescriptionAR",
	"CategoryID", "Size", "Price", "Stock", "Featured",
	"SoldCount", "Order", "Images", "CreatedAt", "UpdatedAt",
}

// ExportProducts は全商品をサイズ単位の行にして xlsx で書き出す
func (u *AdminCatalogUsecase) ExportProducts(ctx context.Context, w io.Writer) error {
	products, err := u.ListProducts(ctx)
	if err != nil {
		return err
	}

	file, err := buildProductSheet(products)
	if err != nil {
		slog.ErrorContext(ctx, "build product sheet", "err", err)
		return NewHTTPError(http.StatusInternalServerError, i18n.MsgInternal)
	}
	if err := file.Write(w); err != nil {
		slog.ErrorContext(ctx, "write product sheet", "err", err)
		return NewHTTPError(http.StatusInternalServerError, i18n.MsgInternal)
	}
	return nil
}

func buildProductSheet(products []model.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(ProductExportSheet)
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range productExportHeaders {
		header.AddCell().SetValue(h)
	}

	for _, p := range products {
		// サイズなしの商品も1行は出す
		sizes := p.Sizes
		if len(sizes) == 0 {
			sizes = []model.ProductSize{{}}
		}
		for _, s := range sizes {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name.EN)
			row.AddCell().SetValue(p.Name.AR)
			row.AddCell().SetValue(p.Description.EN)
			row.AddCell().SetValue(p.Description.AR)
			row.AddCell().SetValue(p.CategoryID)
			row.AddCell().SetValue(s.Label)
			row.AddCell().SetValue(s.Price.StringFixed(2))
			row.AddCell().SetValue(s.Stock)
			row.AddCell().SetValue(p.Featured)
			row.AddCell().SetValue(p.SoldCount)
			row.AddCell().SetValue(p.Order)
			row.AddCell().SetValue(strings.Join(p.Images, ","))
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
	}
	return file, nil
}
