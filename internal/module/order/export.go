package order

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"sportify/internal/global/database"
	"sportify/internal/global/response"
	"sportify/tools"
)

type exportRow struct {
	ID            uint            `excel:"订单ID"`
	Username      string          `excel:"用户名"`
	Email         string          `excel:"邮箱"`
	Phone         string          `excel:"电话"`
	Activity      string          `excel:"活动"`
	Date          string          `excel:"活动日期"`
	Quantity      int             `excel:"人数"`
	TotalPrice    decimal.Decimal `excel:"总价"`
	PaymentMethod string          `excel:"支付方式"`
	Status        string          `excel:"状态"`
	CreatedAt     time.Time       `excel:"下单时间"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toExportRows(orders []OrderView) []exportRow {
	rows := make([]exportRow, 0, len(orders))
	for _, o := range orders {
		row := exportRow{
			ID:         o.ID,
			Quantity:   o.Quantity,
			TotalPrice: o.TotalPrice,
			Status:     string(o.Status),
			CreatedAt:  o.CreatedAt,
		}
		if o.PaymentMethod != nil {
			row.PaymentMethod = string(*o.PaymentMethod)
		}
		if o.User != nil {
			row.Username = o.User.Username
			row.Email = deref(o.User.Email)
			row.Phone = deref(o.User.Phone)
		}
		if o.Activity != nil {
			row.Activity = o.Activity.Title
			row.Date = o.Activity.Date
		}
		rows = append(rows, row)
	}
	return rows
}

// ExportOrders 与列表相同的筛选条件，导出为 xlsx
func ExportOrders(c *gin.Context) {
	req, ok := bindFilter(c)
	if !ok {
		return
	}
	orders, err := findOrders(database.DB.WithContext(c.Request.Context()), req)
	if err != nil {
		log.Error("导出订单查询失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	if err = tools.ExportToExcel(f, "订单", toExportRows(orders)); err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}

	log.Info("导出订单", "count", len(orders))
	name := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102150405"))
	tools.SendAttachment(c, name, tools.ExcelContentType, buf.Bytes())
}
