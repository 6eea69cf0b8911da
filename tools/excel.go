package tools

import (
	"fmt"
	"reflect"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type excelColumn struct {
	index  []int
	header string
}

// excelColumns 收集导出列，表头取 excel 标签，"-" 跳过，匿名结构体展开
func excelColumns(t reflect.Type, parent []int) []excelColumn {
	var cols []excelColumn
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		idx := append(append([]int(nil), parent...), i)
		tag := sf.Tag.Get("excel")
		if tag == "-" {
			continue
		}
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && tag == "" {
			cols = append(cols, excelColumns(sf.Type, idx)...)
			continue
		}
		if tag == "" {
			tag = sf.Name
		}
		cols = append(cols, excelColumn{index: idx, header: tag})
	}
	return cols
}

func cellValue(fv reflect.Value) any {
	if fv.Kind() == reflect.Ptr {
		if fv.IsNil() {
			return ""
		}
		fv = fv.Elem()
	}
	switch v := fv.Interface().(type) {
	case decimal.Decimal:
		f, _ := v.Float64()
		return f
	case time.Time:
		return v.Format(time.DateTime)
	case fmt.Stringer:
		return v.String()
	}
	if fv.Kind() == reflect.String {
		return fv.String()
	}
	return fv.Interface()
}

// ExportToExcel 把结构体切片写入 sheet，第一行为加粗表头
func ExportToExcel(f *excelize.File, sheet string, data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("data %T 不是切片", data)
	}
	elemType := v.Type().Elem()
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("data %T 不是结构体切片", data)
	}

	if sheet == "" {
		sheet = "Sheet1"
	}
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	cols := excelColumns(elemType, nil)
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for i, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col.header); err != nil {
			return err
		}
	}
	if len(cols) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(cols), 1)
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return err
		}
	}

	row := 2
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}
		for c, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			if err := f.SetCellValue(sheet, cell, cellValue(elem.FieldByIndex(col.index))); err != nil {
				return err
			}
		}
		row++
	}
	return nil
}
