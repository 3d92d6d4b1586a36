package exports

import (
	"fmt"

	"bitbucket.org/ztofreight/quotes_backend/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "报价单"

func renderExcel(quote *models.Quote, quoter *models.Quoter) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 14, Bold: true},
	})
	if err != nil {
		return nil, err
	}
	f.SetCellValue(sheetName, "A1", "报价单编号: "+quote.QuoteNumber)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	row := 3
	info := [][2]string{
		{"客户名称:", quote.CustomerName},
		{"联系人:", quote.ContactPerson},
		{"联系电话:", quote.ContactPhone},
		{"报价日期:", formatDate(quote.QuoteDate)},
		{"有效期至:", formatDate(quote.ExpireDate)},
		{"报价人:", quoterLine(quoter)},
	}
	for _, pair := range info {
		f.SetCellValue(sheetName, "A"+fmt.Sprint(row), pair[0])
		f.SetCellValue(sheetName, "B"+fmt.Sprint(row), pair[1])
		row++
	}

	row++
	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 12, Bold: true},
	})
	if err != nil {
		return nil, err
	}
	f.SetCellValue(sheetName, "A"+fmt.Sprint(row), "价格明细")
	f.SetCellStyle(sheetName, "A"+fmt.Sprint(row), "A"+fmt.Sprint(row), sectionStyle)

	if rows := priceRows(quote); len(rows) > 0 {
		row++
		headerStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"CCCCCC"}},
		})
		if err != nil {
			return nil, err
		}
		headers := []string{"区域", "省份", "首重(元/KG)", "续重(元/KG)", "时效"}
		for i, header := range headers {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheetName, cell, header)
			f.SetCellStyle(sheetName, cell, cell, headerStyle)
		}

		for _, region := range rows {
			row++
			f.SetCellValue(sheetName, "A"+fmt.Sprint(row), region.RegionName)
			f.SetCellValue(sheetName, "B"+fmt.Sprint(row), joinProvinces(region.Provinces))
			f.SetCellValue(sheetName, "C"+fmt.Sprint(row), region.FirstWeight.InexactFloat64())
			f.SetCellValue(sheetName, "D"+fmt.Sprint(row), region.AdditionalWeight.InexactFloat64())
			f.SetCellValue(sheetName, "E"+fmt.Sprint(row), region.Remark)
		}
	}

	widths := map[string]float64{"A": 15, "B": 30, "C": 15, "D": 15, "E": 20}
	for col, width := range widths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
