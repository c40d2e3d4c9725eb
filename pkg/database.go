package digitizer

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

type SensorType int

const (
	SiPM SensorType = iota
	PMT
)

func (s SensorType) String() string {
	switch s {
	case SiPM:
		return "SiPM"
	case PMT:
		return "PMT"
	default:
		return "Unknown"
	}
}

type DigitizationParam struct {
	ParamName  string  `db:"ParamName"`
	ParamValue float64 `db:"ParamValue"`
}

// LoadDatabase pulls the digitization parameters and channel counts
// valid for a run and applies them on top of the configuration file.
func LoadDatabase(dbConn *sqlx.DB, runNumber int) error {
	err := getDigitizationParamsFromDB(dbConn, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting digitization parameters from database: %w", err)
		logger.Error(errMessage.Error())
		return errMessage
	}
	err = getChannelCountsFromDB(dbConn, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting channel counts from database: %w", err)
		logger.Error(errMessage.Error())
		return errMessage
	}
	return nil
}

func getDigitizationParamsFromDB(db *sqlx.DB, runNumber int) error {
	query := "SELECT ParamName, ParamValue FROM DigitizationParams WHERE MinRun <= %d and MaxRun >= %d"
	query = fmt.Sprintf(query, runNumber, runNumber)

	if configuration.Verbosity > 0 {
		logger.Info("Digitization parameters read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		return fmt.Errorf("error querying database: %w", err)
	}

	for rows.Next() {
		result := DigitizationParam{}
		err := rows.StructScan(&result)
		if err != nil {
			return fmt.Errorf("error scanning DB row: %w", err)
		}
		applyParam(result)
	}
	return nil
}

func applyParam(param DigitizationParam) {
	switch param.ParamName {
	case "pmt_noise_sigma":
		configuration.PmtNoiseSigma = param.ParamValue
	case "sipm_noise_sigma":
		configuration.SipmNoiseSigma = param.ParamValue
	case "pmt_threshold":
		configuration.PmtThreshold = param.ParamValue
	case "sipm_threshold":
		configuration.SipmThreshold = param.ParamValue
	case "pmt_pedestal":
		configuration.PmtPedestal = param.ParamValue
	case "pmt_slope":
		configuration.PmtSlope = param.ParamValue
	case "sipm_pedestal":
		configuration.SipmPedestal = param.ParamValue
	case "sipm_slope":
		configuration.SipmSlope = param.ParamValue
	default:
		if configuration.Verbosity > 0 {
			message := fmt.Sprintf("Unknown digitization parameter in DB: %s", param.ParamName)
			logger.Info(message, "database")
		}
	}
}

type SensorMappingEntry struct {
	ElecID   int `db:"ElecID"`
	SensorID int `db:"SensorID"`
}

func getChannelCountsFromDB(db *sqlx.DB, runNumber int) error {
	query := "SELECT ElecID, SensorID FROM ChannelMapping WHERE MinRun <= %d and MaxRun >= %d ORDER BY SensorID"
	query = fmt.Sprintf(query, runNumber, runNumber)

	if configuration.Verbosity > 0 {
		logger.Info("Channel mapping read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		return fmt.Errorf("error querying database: %w", err)
	}

	// PMTs sit below ElecID 999 in the mapping, SiPMs above.
	npmts := 0
	nsipms := 0
	threshold := 999
	for rows.Next() {
		result := SensorMappingEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			return fmt.Errorf("error scanning DB row: %w", err)
		}
		if result.ElecID < threshold {
			npmts += 1
		} else {
			nsipms += 1
		}
	}
	configuration.NPmts = npmts
	configuration.NSipms = nsipms
	return nil
}
