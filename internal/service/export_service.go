package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

const (
	exportSheetName  = "时间段"
	exportTimeLayout = "2006-01-02 15:04"
	icsProductID     = "-//museum-backend//schedule export//ZH"
)

// ExportService 导出业务接口
//
// 导出内容为排班表下的全部时间段，顺序与 GetTimePeriodsOfSchedule 一致：
//   - Excel：单 Sheet "时间段"，列为 序号 / 开始 / 结束 / 时长(小时)
//   - iCalendar：每个时间段一个 VEVENT，UID 为 <time_period_id>@museum
type ExportService interface {
	ExportScheduleExcel(ctx context.Context, scheduleID string) (*bytes.Buffer, string, error)
	ExportScheduleICS(ctx context.Context, scheduleID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	scheduleSvc ScheduleService
	logger      *zap.Logger
	now         func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(scheduleSvc ScheduleService, logger *zap.Logger) ExportService {
	return &exportService{scheduleSvc: scheduleSvc, logger: logger, now: time.Now}
}

// ────────────────────── Excel ──────────────────────

func (s *exportService) ExportScheduleExcel(ctx context.Context, scheduleID string) (*bytes.Buffer, string, error) {
	_, periods, err := s.scheduleSvc.ListTimePeriods(ctx, scheduleID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		s.logger.Error("重命名 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	headers := []interface{}{"序号", "开始时间", "结束时间", "时长(小时)"}
	if err := f.SetSheetRow(exportSheetName, "A1", &headers); err != nil {
		s.logger.Error("写入表头失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	for i := range periods {
		tp := &periods[i]
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			i + 1,
			tp.StartDate.Format(exportTimeLayout),
			tp.EndDate.Format(exportTimeLayout),
			tp.Duration().Hours(),
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			s.logger.Error("写入时间段行失败", zap.Int("row", i+2), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}
	_ = f.SetColWidth(exportSheetName, "B", "C", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("排班表_%s.xlsx", scheduleID)
	return buf, filename, nil
}

// ────────────────────── iCalendar ──────────────────────

func (s *exportService) ExportScheduleICS(ctx context.Context, scheduleID string) (*bytes.Buffer, string, error) {
	_, periods, err := s.scheduleSvc.ListTimePeriods(ctx, scheduleID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName("排班表 " + scheduleID)

	stamp := s.now().UTC()
	for i := range periods {
		tp := &periods[i]
		event := cal.AddEvent(tp.TimePeriodID + "@museum")
		event.SetDtStampTime(stamp)
		event.SetStartAt(tp.StartDate.UTC())
		event.SetEndAt(tp.EndDate.UTC())
		event.SetSummary(fmt.Sprintf("值班时间段 #%d", i+1))
	}

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		s.logger.Error("生成 iCalendar 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("schedule_%s.ics", scheduleID)
	return &buf, filename, nil
}
