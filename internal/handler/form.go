package handler

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/blues/crowdhub/internal/logic"
	"github.com/blues/crowdhub/internal/model"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// CampaignForm 创建/编辑表单
type CampaignForm struct {
	Name        string `form:"name" json:"name" binding:"required,max=255"`
	Description string `form:"description" json:"description" binding:"required"`
	Goal        string `form:"goal" json:"goal" binding:"required,numeric,decimal_min=0.01"`
	EndDate     string `form:"end_date" json:"end_date" binding:"omitempty,datestr"`
	CloseDate   string `form:"close_date" json:"close_date" binding:"omitempty,datestr"`
	CategoryId  string `form:"category_id" json:"category_id" binding:"required,number,int64str"`
}

// dateLayouts 接受的日期格式
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var registerOnce sync.Once

// RegisterValidators 注册自定义校验规则，只执行一次
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("gin validator engine is not go-playground/validator")
		}

		// 错误里使用表单字段名
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})

		mustRegister(v, "decimal_min", decimalMin)
		mustRegister(v, "datestr", dateString)
		mustRegister(v, "int64str", int64String)
	})
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

func decimalMin(fl validator.FieldLevel) bool {
	min, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return false
	}
	value, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	if err != nil {
		return false
	}
	return value.GreaterThanOrEqual(min)
}

func dateString(fl validator.FieldLevel) bool {
	_, err := parseDate(fl.Field().String())
	return err == nil
}

// int64String 整数必须落在 int64 范围内
func int64String(fl validator.FieldLevel) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(fl.Field().String()), 10, 64)
	return err == nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Input 转成业务层输入，调用前表单应已通过校验
func (f CampaignForm) Input() (logic.CampaignInput, error) {
	goal, err := decimal.NewFromString(strings.TrimSpace(f.Goal))
	if err != nil {
		return logic.CampaignInput{}, fmt.Errorf("goal: %w", err)
	}
	categoryId, err := strconv.ParseInt(strings.TrimSpace(f.CategoryId), 10, 64)
	if err != nil {
		return logic.CampaignInput{}, fmt.Errorf("category_id: %w", err)
	}
	endDate, err := parseOptionalDate(f.EndDate)
	if err != nil {
		return logic.CampaignInput{}, fmt.Errorf("end_date: %w", err)
	}
	closeDate, err := parseOptionalDate(f.CloseDate)
	if err != nil {
		return logic.CampaignInput{}, fmt.Errorf("close_date: %w", err)
	}

	return logic.CampaignInput{
		Name:        f.Name,
		Description: f.Description,
		Goal:        goal.Round(2),
		EndDate:     endDate,
		CloseDate:   closeDate,
		CategoryId:  categoryId,
	}, nil
}

// campaignFormFrom 编辑页用已有数据填充表单
func campaignFormFrom(c *model.CampaignModel) CampaignForm {
	return CampaignForm{
		Name:        c.Name,
		Description: c.Description,
		Goal:        c.Goal.StringFixed(2),
		EndDate:     formatInputDate(c.EndDate),
		CloseDate:   formatInputDate(c.CloseDate),
		CategoryId:  strconv.FormatInt(c.CategoryId, 10),
	}
}

func formatInputDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// translateValidation 把 validator 错误转成字段级提示
func translateValidation(errs validator.ValidationErrors) *logic.ValidationError {
	verr := logic.NewValidationError()
	for _, fe := range errs {
		field := fe.Field()
		label := strings.ReplaceAll(field, "_", " ")

		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("The %s field is required.", label)
		case "max":
			msg = fmt.Sprintf("The %s field must not be greater than %s characters.", label, fe.Param())
		case "numeric":
			msg = fmt.Sprintf("The %s field must be a number.", label)
		case "number", "int64str":
			msg = fmt.Sprintf("The %s field must be an integer.", label)
		case "decimal_min":
			msg = fmt.Sprintf("The %s field must be at least %s.", label, fe.Param())
		case "datestr":
			msg = fmt.Sprintf("The %s field must be a valid date.", label)
		case "email":
			msg = fmt.Sprintf("The %s field must be a valid email address.", label)
		default:
			msg = fmt.Sprintf("The %s field is invalid.", label)
		}
		verr.Add(field, msg)
	}
	return verr
}
