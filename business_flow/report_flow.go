package businessflow

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/bpnlt/tv-planner/app/dto"
	"github.com/bpnlt/tv-planner/repository"
	"github.com/bpnlt/tv-planner/utils"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ReportFlow assembles campaign report data and renders it to Excel and CSV
type ReportFlow interface {
	GetCampaignReportData(ctx context.Context, uuid string) (*dto.CampaignReportData, error)
	ExportCampaignExcel(ctx context.Context, uuid string) ([]byte, string, error)
	ExportCampaignCSV(ctx context.Context, uuid string) ([]byte, string, error)
}

// ReportFlowImpl implements ReportFlow
type ReportFlowImpl struct {
	campaignRepo repository.CampaignRepository
	waveRepo     repository.WaveRepository
	itemRepo     repository.WaveItemRepository
	tvcRepo      repository.TVCRepository
	groupRepo    repository.ChannelGroupRepository
	listRepo     repository.PricingListRepository
	rateFlow     RateCardFlow
	discountFlow DiscountFlow
	db           *gorm.DB
}

// NewReportFlow constructs a ReportFlow
func NewReportFlow(
	campaignRepo repository.CampaignRepository,
	waveRepo repository.WaveRepository,
	itemRepo repository.WaveItemRepository,
	tvcRepo repository.TVCRepository,
	groupRepo repository.ChannelGroupRepository,
	listRepo repository.PricingListRepository,
	rateFlow RateCardFlow,
	discountFlow DiscountFlow,
	db *gorm.DB,
) ReportFlow {
	return &ReportFlowImpl{
		campaignRepo: campaignRepo,
		waveRepo:     waveRepo,
		itemRepo:     itemRepo,
		tvcRepo:      tvcRepo,
		groupRepo:    groupRepo,
		listRepo:     listRepo,
		rateFlow:     rateFlow,
		discountFlow: discountFlow,
		db:           db,
	}
}

// GetCampaignReportData assembles the full report tree for one campaign from
// the stored item prices. Nothing is recomputed here: the report shows what
// the pricing engine last wrote. A missing campaign yields nil data and a nil
// error; callers decide how to surface that.
func (f *ReportFlowImpl) GetCampaignReportData(ctx context.Context, uuid string) (*dto.CampaignReportData, error) {
	campaign, err := f.campaignRepo.ByUUID(ctx, uuid)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign == nil {
		return nil, nil
	}

	data := &dto.CampaignReportData{
		CampaignUUID: campaign.UUID,
		CampaignName: campaign.Name,
		Status:       campaign.Status.String(),
		Waves:        []dto.WaveReportBlock{},
		GeneratedAt:  utils.UTCNow().Format("2006-01-02 15:04:05"),
	}
	if campaign.Agency != nil {
		data.Agency = *campaign.Agency
	}
	if campaign.Client != nil {
		data.Client = *campaign.Client
	}
	if campaign.Product != nil {
		data.Product = *campaign.Product
	}
	if campaign.Country != nil {
		data.Country = *campaign.Country
	}
	if campaign.StartDate != nil {
		data.StartDate = utils.FormatDate(*campaign.StartDate)
	}
	if campaign.EndDate != nil {
		data.EndDate = utils.FormatDate(*campaign.EndDate)
	}
	if campaign.PricingListID != nil {
		list, err := f.listRepo.ByID(ctx, *campaign.PricingListID)
		if err != nil {
			return nil, fmt.Errorf("failed to load pricing list: %w", err)
		}
		if list != nil {
			data.PricingList = list.Name
		}
	}

	groups, err := f.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel groups: %w", err)
	}
	groupNames := make(map[uint]string, len(groups))
	for _, g := range groups {
		groupNames[g.ID] = g.Name
	}
	tvcs, err := f.tvcRepo.ListByCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tvcs: %w", err)
	}
	tvcNames := make(map[uint]string, len(tvcs))
	for _, tvc := range tvcs {
		tvcNames[tvc.ID] = tvc.Name
	}

	campaignDiscounts, err := f.discountFlow.ListCampaignDiscounts(ctx, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaign discounts: %w", err)
	}

	waves, err := f.waveRepo.ListByCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list waves: %w", err)
	}
	for _, wave := range waves {
		block := dto.WaveReportBlock{
			WaveID: wave.ID,
			Rows:   []dto.WaveReportRow{},
		}
		if wave.StartDate != nil {
			block.StartDate = utils.FormatDate(*wave.StartDate)
		}
		if wave.EndDate != nil {
			block.EndDate = utils.FormatDate(*wave.EndDate)
		}

		items, err := f.itemRepo.ListByWave(ctx, wave.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list wave items: %w", err)
		}
		for _, item := range items {
			row := dto.WaveReportRow{
				Owner:        groupNames[item.ChannelGroupID],
				TargetGroup:  item.TargetGroup,
				ClipDuration: item.ClipDuration,
				TRPs:         item.TRPs,
				GRPPlanned:   item.GRPPlanned,
				Affinity1:    item.Affinity1,
				GrossCPP:     item.GrossCPP,
				GrossPrice:   item.GrossPrice,
				NetPrice:     item.NetPrice,
				NetNetPrice:  item.NetNetPrice,
			}
			if item.TVCID != nil {
				row.TVCName = tvcNames[*item.TVCID]
			}
			rate, err := f.rateFlow.ResolveRate(ctx, campaign.PricingListID, item.ChannelGroupID, item.TargetGroup)
			if err == nil {
				row.PrimaryLabel = rate.PrimaryLabel
			} else if IsRateNotFound(err) {
				row.PrimaryLabel = "N/A"
			} else {
				return nil, err
			}

			block.Rows = append(block.Rows, row)
			block.Totals.TRPs += item.TRPs
			block.Totals.GRPPlanned += item.GRPPlanned
			block.Totals.GrossPrice += item.GrossPrice
			block.Totals.NetPrice += item.NetPrice
			block.Totals.NetNetPrice += item.NetNetPrice
		}

		total, err := f.discountFlow.ComputeWaveTotal(ctx, wave.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute wave total: %w", err)
		}
		block.Total = *total
		waveDiscounts, err := f.discountFlow.ListWaveDiscounts(ctx, wave.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list wave discounts: %w", err)
		}
		block.Discounts = append(waveDiscounts, campaignDiscounts...)

		data.Waves = append(data.Waves, block)
		data.Totals.TRPs += block.Totals.TRPs
		data.Totals.GRPPlanned += block.Totals.GRPPlanned
		data.Totals.GrossPrice += block.Totals.GrossPrice
		data.Totals.NetPrice += block.Totals.NetPrice
		data.Totals.NetNetPrice += block.Totals.NetNetPrice
	}
	return data, nil
}

var reportColumns = []string{
	"Owner", "Label", "Target group", "TVC", "Clip, s", "TRP", "GRP",
	"Affinity", "Gross CPP", "Gross price", "Net price", "Net net price",
}

// ExportCampaignExcel renders the campaign report as an .xlsx workbook
func (f *ReportFlowImpl) ExportCampaignExcel(ctx context.Context, uuid string) ([]byte, string, error) {
	data, err := f.GetCampaignReportData(ctx, uuid)
	if err != nil {
		return nil, "", err
	}
	if data == nil {
		return nil, "", NewBusinessError("REPORT_FAILED", "Campaign not found", ErrCampaignNotFound)
	}

	file := excelize.NewFile()
	defer file.Close()
	sheet := "Plan"
	file.SetSheetName("Sheet1", sheet)

	header := [][]any{
		{"Agency", data.Agency},
		{"Client", data.Client},
		{"Product", data.Product},
		{"Campaign", data.CampaignName},
		{"Period", data.StartDate + " - " + data.EndDate},
		{"Country", data.Country},
	}
	row := 1
	for _, pair := range header {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, "", err
		}
		if err := file.SetSheetRow(sheet, cell, &pair); err != nil {
			return nil, "", err
		}
		row++
	}
	row++

	for _, block := range data.Waves {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, "", err
		}
		title := []any{fmt.Sprintf("Wave %s - %s", block.StartDate, block.EndDate)}
		if err := file.SetSheetRow(sheet, cell, &title); err != nil {
			return nil, "", err
		}
		row++

		cell, err = excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, "", err
		}
		cols := make([]any, len(reportColumns))
		for i, c := range reportColumns {
			cols[i] = c
		}
		if err := file.SetSheetRow(sheet, cell, &cols); err != nil {
			return nil, "", err
		}
		row++

		for _, r := range block.Rows {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return nil, "", err
			}
			values := []any{
				r.Owner, r.PrimaryLabel, r.TargetGroup, r.TVCName, r.ClipDuration,
				r.TRPs, r.GRPPlanned, r.Affinity1, r.GrossCPP, r.GrossPrice,
				r.NetPrice, r.NetNetPrice,
			}
			if err := file.SetSheetRow(sheet, cell, &values); err != nil {
				return nil, "", err
			}
			row++
		}

		cell, err = excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, "", err
		}
		totals := []any{
			"Total", "", "", "", "",
			block.Totals.TRPs, block.Totals.GRPPlanned, "", "",
			block.Totals.GrossPrice, block.Totals.NetPrice, block.Totals.NetNetPrice,
		}
		if err := file.SetSheetRow(sheet, cell, &totals); err != nil {
			return nil, "", err
		}
		row += 2
	}

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return nil, "", err
	}
	grand := []any{
		"Campaign total", "", "", "", "",
		data.Totals.TRPs, data.Totals.GRPPlanned, "", "",
		data.Totals.GrossPrice, data.Totals.NetPrice, data.Totals.NetNetPrice,
	}
	if err := file.SetSheetRow(sheet, cell, &grand); err != nil {
		return nil, "", err
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}
	filename := fmt.Sprintf("plan_%s.xlsx", data.CampaignUUID)
	return buf.Bytes(), filename, nil
}

// ExportCampaignCSV renders the campaign report as a flat CSV, one line per
// wave item with the wave's date range repeated on each line.
func (f *ReportFlowImpl) ExportCampaignCSV(ctx context.Context, uuid string) ([]byte, string, error) {
	data, err := f.GetCampaignReportData(ctx, uuid)
	if err != nil {
		return nil, "", err
	}
	if data == nil {
		return nil, "", NewBusinessError("REPORT_FAILED", "Campaign not found", ErrCampaignNotFound)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := append([]string{"Wave start", "Wave end"}, reportColumns...)
	if err := w.Write(header); err != nil {
		return nil, "", err
	}
	for _, block := range data.Waves {
		for _, r := range block.Rows {
			record := []string{
				block.StartDate, block.EndDate,
				r.Owner, r.PrimaryLabel, r.TargetGroup, r.TVCName,
				strconv.Itoa(r.ClipDuration),
				formatFloat(r.TRPs), formatFloat(r.GRPPlanned), formatFloat(r.Affinity1),
				formatFloat(r.GrossCPP), formatFloat(r.GrossPrice),
				formatFloat(r.NetPrice), formatFloat(r.NetNetPrice),
			}
			if err := w.Write(record); err != nil {
				return nil, "", err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to render csv: %w", err)
	}
	filename := fmt.Sprintf("plan_%s.csv", data.CampaignUUID)
	return buf.Bytes(), filename, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
