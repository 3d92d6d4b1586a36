package exports

import (
	"bytes"
	"html/template"
	"time"

	"bitbucket.org/ztofreight/quotes_backend/models"
)

// The styled document backend. html/template escapes every user-supplied
// field, so customer-entered text cannot break the document structure.

type htmlPriceRow struct {
	RegionName       string
	Provinces        string
	FirstWeight      string
	AdditionalWeight string
	Remark           string
}

type htmlData struct {
	Theme         Theme
	QuoteNumber   string
	GeneratedAt   string
	CustomerName  string
	ContactPerson string
	ContactPhone  string
	QuoteDate     string
	ExpireDate    string
	QuoterLine    string
	PriceRows     []htmlPriceRow
	TaxNote       string
	FixedTerms    []models.TermItem
	OptionalTerms []models.TermItem
	CustomTerms   []string
	Remark        string
}

func renderHTML(quote *models.Quote, quoter *models.Quoter, theme Theme, now time.Time) ([]byte, error) {
	data := htmlData{
		Theme:         theme,
		QuoteNumber:   quote.QuoteNumber,
		GeneratedAt:   now.Format("2006-01-02 15:04"),
		CustomerName:  quote.CustomerName,
		ContactPerson: quote.ContactPerson,
		ContactPhone:  quote.ContactPhone,
		QuoteDate:     formatDate(quote.QuoteDate),
		ExpireDate:    formatDate(quote.ExpireDate),
		QuoterLine:    quoterLine(quoter),
		TaxNote:       taxNote(quote),
		FixedTerms:    quote.FixedTerms,
		OptionalTerms: quote.OptionalTerms,
		CustomTerms:   quote.CustomTerms,
		Remark:        quote.Remark,
	}
	for _, region := range priceRows(quote) {
		data.PriceRows = append(data.PriceRows, htmlPriceRow{
			RegionName:       region.RegionName,
			Provinces:        joinProvinces(region.Provinces),
			FirstWeight:      region.FirstWeight.StringFixed(2),
			AdditionalWeight: region.AdditionalWeight.StringFixed(2),
			Remark:           region.Remark,
		})
	}

	var buf bytes.Buffer
	if err := quoteDocument.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var quoteDocument = template.Must(template.New("quote").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>报价单 - {{.QuoteNumber}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: "Microsoft YaHei", Arial, sans-serif;
    line-height: 1.6;
    padding: 40px;
    background: #f5f5f5;
}
.container {
    max-width: 900px;
    margin: 0 auto;
    background: white;
    padding: 40px;
    box-shadow: 0 0 20px rgba(0,0,0,0.1);
}
.header {
    border-bottom: 3px solid {{.Theme.Primary}};
    padding-bottom: 20px;
    margin-bottom: 30px;
}
.header h1 {
    color: {{.Theme.Primary}};
    font-size: 28px;
    margin-bottom: 10px;
}
.header .quote-number {
    color: #666;
    font-size: 14px;
}
.info-grid {
    display: grid;
    grid-template-columns: 1fr 1fr;
    gap: 15px;
    margin-bottom: 30px;
}
.info-item {
    padding: 10px;
    background: {{.Theme.Secondary}};
    border-left: 3px solid {{.Theme.Primary}};
}
.info-item label {
    color: #666;
    font-size: 12px;
    display: block;
}
.info-item .value {
    color: #333;
    font-size: 14px;
    font-weight: bold;
}
.price-section {
    margin: 30px 0;
}
.price-section h2 {
    color: {{.Theme.Primary}};
    font-size: 20px;
    margin-bottom: 15px;
    padding-bottom: 10px;
    border-bottom: 2px solid {{.Theme.Secondary}};
}
.price-table {
    width: 100%;
    border-collapse: collapse;
    margin-bottom: 20px;
}
.price-table th {
    background: {{.Theme.Primary}};
    color: white;
    padding: 12px;
    text-align: left;
    font-weight: normal;
}
.price-table td {
    padding: 10px 12px;
    border-bottom: 1px solid #eee;
}
.price-table tr:hover {
    background: {{.Theme.Secondary}};
}
.terms-section {
    margin: 30px 0;
}
.terms-section h3 {
    color: {{.Theme.Primary}};
    font-size: 16px;
    margin-bottom: 10px;
}
.terms-section p {
    margin: 8px 0;
    color: #333;
    font-size: 14px;
}
.remark-block {
    margin-top: 20px;
    padding: 15px;
    background: #fff3cd;
    border-left: 4px solid #ffc107;
}
.footer {
    margin-top: 40px;
    padding-top: 20px;
    border-top: 1px solid #ddd;
    text-align: center;
    color: #999;
    font-size: 12px;
}
@media print {
    body { padding: 0; background: white; }
    .container { box-shadow: none; }
}
</style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>中通快递服务报价单</h1>
        <div class="quote-number">编号: {{.QuoteNumber}} | 生成日期: {{.GeneratedAt}}</div>
    </div>

    <div class="info-grid">
        <div class="info-item">
            <label>客户名称</label>
            <div class="value">{{.CustomerName}}</div>
        </div>
        <div class="info-item">
            <label>联系人</label>
            <div class="value">{{.ContactPerson}}</div>
        </div>
        <div class="info-item">
            <label>联系电话</label>
            <div class="value">{{.ContactPhone}}</div>
        </div>
        <div class="info-item">
            <label>报价日期</label>
            <div class="value">{{.QuoteDate}}</div>
        </div>
        <div class="info-item">
            <label>有效期至</label>
            <div class="value">{{.ExpireDate}}</div>
        </div>
        <div class="info-item">
            <label>报价人</label>
            <div class="value">{{.QuoterLine}}</div>
        </div>
    </div>

    <div class="price-section">
        <h2>价格方案</h2>
{{- if .PriceRows}}
        <table class="price-table">
            <thead><tr><th>区域</th><th>省份</th><th>首重(元/KG)</th><th>续重(元/KG)</th><th>时效</th></tr></thead>
            <tbody>
{{- range .PriceRows}}
            <tr>
                <td>{{.RegionName}}</td>
                <td>{{.Provinces}}</td>
                <td>{{.FirstWeight}}</td>
                <td>{{.AdditionalWeight}}</td>
                <td>{{.Remark}}</td>
            </tr>
{{- end}}
            </tbody>
        </table>
{{- end}}
        <p style="margin-top: 10px; color: #666; font-size: 14px;">{{.TaxNote}}</p>
    </div>

{{- if or .FixedTerms .OptionalTerms .CustomTerms}}
    <div class="terms-section">
{{- if .FixedTerms}}
        <h3>服务条款</h3>
{{- range .FixedTerms}}
        <p><strong>{{.Title}}:</strong> {{.Content}}</p>
{{- end}}
{{- end}}
{{- range .OptionalTerms}}
        <p><strong>{{.Title}}:</strong> {{.Content}}</p>
{{- end}}
{{- if .CustomTerms}}
        <h3>特别说明</h3>
{{- range .CustomTerms}}
        <p>• {{.}}</p>
{{- end}}
{{- end}}
    </div>
{{- end}}

{{- if .Remark}}
    <div class="remark-block"><strong>备注:</strong> {{.Remark}}</div>
{{- end}}

    <div class="footer">
        <p>中通快递服务有限公司</p>
        <p>本报价单由系统自动生成 | 如有疑问请联系报价人</p>
    </div>
</div>
</body>
</html>
`))
