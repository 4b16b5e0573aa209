package web

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed templates
var templateFS embed.FS

// Templates 解析内嵌模板，模板名为相对 templates 的路径，如 campaigns/index.tmpl
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("解析模板失败: %w", err)
	}
	return tmpl, nil
}

// Funcs 模板函数
func Funcs() template.FuncMap {
	return template.FuncMap{
		"date":     formatDate,
		"money":    formatMoney,
		"idstr":    func(id int64) string { return strconv.FormatInt(id, 10) },
		"progress": progress,
	}
}

func formatDate(v interface{}) string {
	switch t := v.(type) {
	case *time.Time:
		if t == nil {
			return "-"
		}
		return t.Format("2006-01-02")
	case time.Time:
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02")
	default:
		return "-"
	}
}

func formatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// progress 完成百分比，取整且不超过 100
func progress(funded, goal decimal.Decimal) int {
	if !goal.IsPositive() {
		return 0
	}
	pct := funded.Div(goal).Mul(decimal.NewFromInt(100)).IntPart()
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return int(pct)
}
