package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

func init() {
	InitializeLogger()
}

// Populated by ldflags
var (
	version            string
	buildUnixTimestamp string
	commitHash         string
)

func main() {
	ts, _ := strconv.ParseInt(buildUnixTimestamp, 10, 64)
	buildTime := time.Unix(ts, 0)

	versionFlag := flag.Bool("version", false, "Print version")
	systemdFlag := flag.Bool("systemd", false, "Print systemd service file")
	hostFlag := flag.String("host", "", "Listen host")
	portFlag := flag.String("port", "", "Listen port")
	dataDirFlag := flag.String("data-dir", "", "Directory holding pool files")
	configFlag := flag.String("config", "", "Path to tombola.toml")
	flag.Parse()

	if *versionFlag {
		fmt.Println("Tombola version:", version)
		fmt.Println("Built on:", buildTime)
		fmt.Println("Commit hash:", commitHash)
		return
	}

	if *systemdFlag {
		SystemdServiceFile()
		return
	}

	log.Info().
		Str("version", version).
		Str("build_timestamp", buildTime.Format(time.RFC3339)).
		Str("commit_hash", commitHash).
		Msg("Initializing Tombola")

	fs := NewTombolaOSFS()

	config, err := NewConfig(fs, Flags{
		Host:       *hostFlag,
		Port:       *portFlag,
		DataDir:    *dataDirFlag,
		ConfigPath: *configFlag,
	}, os.Getenv)
	if err != nil {
		log.Fatal().Err(err).Msg("Config initialization failed")
	}

	storage := NewStorage(fs, config)
	drum := NewDrum(config, storage)

	buildInfo := BuildInfo{
		Version: version,
		Commit:  commitHash,
	}

	if err := StartServer(config, buildInfo, drum, storage); err != nil {
		log.Err(err).Msg("Server closed with error")
	}
}
