package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/wanjala/cdf-tracker/internal/config"
	"github.com/wanjala/cdf-tracker/internal/db"
	"github.com/wanjala/cdf-tracker/internal/logger"
	"github.com/wanjala/cdf-tracker/internal/model"
	"github.com/wanjala/cdf-tracker/internal/repository"
)

type seedProject struct {
	title          string
	description    string
	category       model.ProjectCategory
	status         model.ProjectStatus
	budget         float64
	spent          float64
	progress       float64
	code           string
	startDate      string
	completionDate string
}

type seedAward struct {
	projectTitle  string
	contractor    int
	tenderID      string
	method        string
	contractValue float64
	awardDate     string
	flagged       bool
	flagReason    string
}

var seedConstituencies = []model.Constituency{
	{Code: "001", Name: "Kajiado North", County: "Kajiado", MPName: "Onesmus Ngogoyo Nguro"},
	{Code: "002", Name: "Kajiado Central", County: "Kajiado", MPName: "Elijah Memusi Kanchory"},
	{Code: "003", Name: "Yatta", County: "Machakos", MPName: "Robert Basil Ngui"},
	{Code: "004", Name: "Kisumu East", County: "Kisumu", MPName: "Shakeel Shabbir Ahmed"},
	{Code: "005", Name: "Mwingi Central", County: "Kitui", MPName: "Gideon Mulyungi"},
	{Code: "006", Name: "Kajiado East", County: "Kajiado", MPName: "Kakai Leshore"},
}

var seedProjects = []seedProject{
	{"Kajiado North Classroom Block", "Construction of 6 new classrooms at Ololu Primary School", model.CategoryEducation, model.StatusCompleted, 3800000, 3800000, 100, "001", "2024-01-15", "2025-06-30"},
	{"Isinya Water Pan Desilting", "Desilting and fencing of community water pan", model.CategoryWater, model.StatusOngoing, 2800000, 1500000, 60, "001", "2025-03-01", "2025-12-31"},
	{"Kitengela Dispensary Upgrade", "Upgrade of Kitengela dispensary to level 4 facility", model.CategoryHealth, model.StatusOngoing, 5200000, 2000000, 40, "001", "2025-02-01", "2026-03-01"},
	{"Kajiado Central Borehole Project", "Drilling and equipping of solar-powered borehole", model.CategoryWater, model.StatusFlagged, 2200000, 2200000, 100, "002", "2024-05-01", "2025-08-15"},
	{"Kajiado Central Police Post Construction", "Construction of modern police post", model.CategorySecurity, model.StatusOngoing, 4800000, 1200000, 25, "002", "2025-01-10", "2025-12-20"},
	{"Yatta Health Centre Upgrade", "Expansion and equipping of maternity wing", model.CategoryHealth, model.StatusOngoing, 4500000, 3000000, 70, "003", "2024-11-01", "2025-09-30"},
	{"Kithimani Health Centre Expansion", "Construction of new outpatient block", model.CategoryHealth, model.StatusOngoing, 4100000, 1000000, 25, "003", "2025-04-01", "2026-02-28"},
	{"Nyang'oma Secondary School Laboratory", "Construction of modern science laboratory", model.CategoryEducation, model.StatusPlanned, 3500000, 0, 0, "003", "", ""},
	{"Kisumu East Road Grading", "Grading and murraming of 15km feeder roads", model.CategoryInfrastructure, model.StatusPlanned, 3200000, 0, 0, "004", "", ""},
	{"Kisumu East Solar Lighting", "Installation of solar street lights in markets", model.CategoryEnvironment, model.StatusOngoing, 2800000, 800000, 30, "004", "2025-06-01", "2025-12-31"},
	{"Mwingi Central Solar Lighting", "Solar lighting for public facilities", model.CategoryEnvironment, model.StatusPlanned, 1800000, 0, 0, "005", "", ""},
	{"Nguni Borehole Rehabilitation", "Rehabilitation of community borehole", model.CategoryWater, model.StatusFlagged, 1900000, 1900000, 100, "005", "2024-07-01", "2025-05-15"},
}

var seedContractors = []model.Contractor{
	{Name: "AquaDrill Services Ltd", RegistrationNo: strPtr("C-10291")},
	{Name: "Mavuno Builders Ltd", RegistrationNo: strPtr("C-20911")},
	{Name: "Nuru Engineering Co.", RegistrationNo: strPtr("C-30018")},
	{Name: "Kibo Works & Supplies", RegistrationNo: strPtr("C-40877")},
}

// The award layout is deliberately skewed: AquaDrill holds every water
// project so the contractor-concentration and repeated-flag detectors have
// demo material to fire on.
var seedAwards = []seedAward{
	{"Nguni Borehole Rehabilitation", 0, "NG-CDF/MWINGI/2025/019", "Open Tender", 1900000, "2024-06-10", true, "Prior borehole project reported incomplete despite full payment."},
	{"Kajiado Central Borehole Project", 0, "NG-CDF/KAJIADO/2024/041", "Open Tender", 2200000, "2024-04-02", false, ""},
	{"Isinya Water Pan Desilting", 0, "NG-CDF/KAJIADO/2025/008", "RFQ", 2800000, "2025-02-20", false, ""},
	{"Kajiado North Classroom Block", 1, "NG-CDF/KAJIADO/2024/002", "Open Tender", 3800000, "2024-01-05", false, ""},
	{"Kithimani Health Centre Expansion", 1, "NG-CDF/YATTA/2025/015", "Open Tender", 4100000, "2025-03-15", false, ""},
	{"Kisumu East Solar Lighting", 2, "NG-CDF/KISUMU/2025/003", "Open Tender", 2800000, "2025-05-20", false, ""},
	{"Mwingi Central Solar Lighting", 2, "NG-CDF/MWINGI/2025/022", "Direct Procurement", 1800000, "2025-06-01", true, "Direct procurement used repeatedly by same contractor in same FY."},
	{"Kajiado Central Police Post Construction", 3, "NG-CDF/KAJIADO/2025/013", "Open Tender", 4800000, "2025-01-02", false, ""},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.Reset(ctx, database); err != nil {
		log.Fatal().Err(err).Msg("failed to clear existing data")
	}

	constituencies := repository.NewConstituencyRepository(database)
	projects := repository.NewProjectRepository(database)
	contractors := repository.NewContractorRepository(database)
	awards := repository.NewAwardRepository(database)

	for _, c := range seedConstituencies {
		if _, err := constituencies.Create(ctx, c); err != nil {
			log.Fatal().Err(err).Str("code", c.Code).Msg("failed to seed constituency")
		}
	}

	projectIDs := map[string]int64{}
	for _, p := range seedProjects {
		created, err := projects.Create(ctx, model.Project{
			Title:            p.title,
			Description:      strPtr(p.description),
			Category:         p.category,
			Status:           p.status,
			Budget:           p.budget,
			Spent:            floatPtr(p.spent),
			Progress:         floatPtr(p.progress),
			ConstituencyCode: p.code,
			StartDate:        datePtr(p.startDate),
			CompletionDate:   datePtr(p.completionDate),
			IsMock:           true,
		})
		if err != nil {
			log.Fatal().Err(err).Str("title", p.title).Msg("failed to seed project")
		}
		projectIDs[p.title] = created.ID
	}

	contractorIDs := make([]int64, 0, len(seedContractors))
	for _, c := range seedContractors {
		created, err := contractors.Create(ctx, c)
		if err != nil {
			log.Fatal().Err(err).Str("name", c.Name).Msg("failed to seed contractor")
		}
		contractorIDs = append(contractorIDs, created.ID)
	}

	for _, a := range seedAwards {
		award := model.ProcurementAward{
			ProjectID:         projectIDs[a.projectTitle],
			ContractorID:      contractorIDs[a.contractor],
			TenderID:          strPtr(a.tenderID),
			ProcurementMethod: strPtr(a.method),
			ContractValue:     floatPtr(a.contractValue),
			AwardDate:         datePtr(a.awardDate),
			PerformanceFlag:   a.flagged,
		}
		if a.flagReason != "" {
			award.PerformanceFlagReason = strPtr(a.flagReason)
		}
		if _, err := awards.Create(ctx, award); err != nil {
			log.Fatal().Err(err).Str("tender", a.tenderID).Msg("failed to seed award")
		}
	}

	log.Info().
		Int("constituencies", len(seedConstituencies)).
		Int("projects", len(seedProjects)).
		Int("contractors", len(seedContractors)).
		Int("awards", len(seedAwards)).
		Msg("demo dataset seeded")
}

func strPtr(value string) *string {
	return &value
}

func floatPtr(value float64) *float64 {
	return &value
}

func datePtr(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &parsed
}
