package statcast_test

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stitts-dev/dugout/internal/models"
	"github.com/stitts-dev/dugout/internal/statcast"
)

const (
	sotoMLBAM  = 665742
	coleMLBAM  = 543037
	judgeMLBAM = 592450
)

type RepositoryTestSuite struct {
	suite.Suite
	db      *gorm.DB
	repo    *statcast.GormRepository
	service *statcast.Service

	soto, cole, judge playerSeasons
}

type playerSeasons struct {
	y2023, y2024 uint
}

func (s *RepositoryTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.db = db

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.Require().NoError(s.db.AutoMigrate(
		&models.Player{},
		&models.PlayerSeason{},
		&models.StatcastPlay{},
	))

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	s.repo = statcast.NewGormRepository(s.db)
	s.service = statcast.NewService(s.repo, log)
}

func (s *RepositoryTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM statcast_plays")
	s.db.Exec("DELETE FROM player_seasons")
	s.db.Exec("DELETE FROM players")

	s.soto = s.createPlayer(sotoMLBAM, "Juan", "Soto")
	s.cole = s.createPlayer(coleMLBAM, "Gerrit", "Cole")
	s.judge = s.createPlayer(judgeMLBAM, "Aaron", "Judge")
}

func (s *RepositoryTestSuite) createPlayer(mlbam int, first, last string) playerSeasons {
	id := mlbam
	player := models.Player{KeyMLBAM: &id, NameFirst: first, NameLast: last}
	s.Require().NoError(s.db.Create(&player).Error)

	var seasons playerSeasons
	for _, year := range []int{2023, 2024} {
		season := models.PlayerSeason{PlayerID: player.ID, Year: year}
		s.Require().NoError(s.db.Create(&season).Error)
		if year == 2023 {
			seasons.y2023 = season.ID
		} else {
			seasons.y2024 = season.ID
		}
	}
	return seasons
}

func (s *RepositoryTestSuite) createPlay(gamePk, atBat, pitch int, event string, speed *float64, hitter, pitcher uint) {
	play := models.StatcastPlay{
		GamePk:                gamePk,
		GameDate:              datatypes.Date(time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)),
		AtBatNumber:           &atBat,
		PitchNumber:           &pitch,
		LaunchSpeed:           speed,
		HitterPlayerSeasonID:  hitter,
		PitcherPlayerSeasonID: pitcher,
	}
	if event != "" {
		play.Events = &event
	}
	s.Require().NoError(s.db.Create(&play).Error)
}

func (s *RepositoryTestSuite) TestFindMatchupEvents_AcrossSeasons() {
	speed := 104.1
	s.createPlay(1001, 5, 1, "", nil, s.soto.y2023, s.cole.y2023)
	s.createPlay(1001, 5, 2, models.EventHomeRun, &speed, s.soto.y2023, s.cole.y2023)
	s.createPlay(2001, 12, 1, models.EventStrikeout, nil, s.soto.y2024, s.cole.y2024)
	// different batter, same pitcher
	s.createPlay(2001, 13, 1, models.EventSingle, nil, s.judge.y2024, s.cole.y2024)

	events, err := s.repo.FindMatchupEvents(context.Background(), sotoMLBAM, coleMLBAM)
	s.Require().NoError(err)
	s.Require().Len(events, 3)

	s.Nil(events[0].Event)
	s.Equal(models.EventHomeRun, *events[1].Event)
	s.Equal(104.1, *events[1].LaunchSpeed)
	s.Equal(12, *events[2].AtBatNumber)
}

func (s *RepositoryTestSuite) TestFindMatchupEvents_NoHistory() {
	s.createPlay(2001, 13, 1, models.EventSingle, nil, s.judge.y2024, s.cole.y2024)

	events, err := s.repo.FindMatchupEvents(context.Background(), sotoMLBAM, coleMLBAM)
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *RepositoryTestSuite) TestBatterVsPitcher() {
	hard := 99.0
	soft := 70.0
	s.createPlay(1001, 1, 1, models.EventDouble, &hard, s.soto.y2024, s.cole.y2024)
	s.createPlay(1001, 20, 1, models.EventFieldOut, &soft, s.soto.y2024, s.cole.y2024)
	s.createPlay(1001, 40, 1, models.EventWalk, nil, s.soto.y2024, s.cole.y2024)

	stats, err := s.service.BatterVsPitcher(context.Background(), sotoMLBAM, coleMLBAM)
	s.Require().NoError(err)

	s.Equal(2, stats.AtBats)
	s.Equal(1, stats.Hits)
	s.Equal(1, stats.Walks)
	s.InDelta(0.5, stats.BattingAverage, 1e-9)
	s.InDelta(2.0/3.0, stats.OnBasePercentage, 1e-9)
	s.InDelta(1.0, stats.SluggingPercentage, 1e-9)
	s.Require().NotNil(stats.HardHitRate)
	s.InDelta(0.5, *stats.HardHitRate, 1e-9)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
