package main

import (
	"context"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/fsx"
	"github.com/Abraxas-365/cvrelay/pkg/fsx/fsxembed"
	"github.com/Abraxas-365/cvrelay/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/cvrelay/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/cvrelay/pkg/iam/auth"
	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/pkg/logx"
	"github.com/Abraxas-365/cvrelay/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/cvrelay/recruitment/candidate/candidateinfra"
	"github.com/Abraxas-365/cvrelay/recruitment/job/jobinfra"
	"github.com/Abraxas-365/cvrelay/recruitment/resume/resumeapi"
	"github.com/Abraxas-365/cvrelay/recruitment/resume/resumeinfra"
	"github.com/Abraxas-365/cvrelay/recruitment/resume/resumeparser"
	"github.com/Abraxas-365/cvrelay/recruitment/resume/resumesrv"
	"github.com/Abraxas-365/cvrelay/recruitment/resume/worker"
	"github.com/Abraxas-365/cvrelay/recruitment/skill"
	"github.com/Abraxas-365/cvrelay/recruitment/skill/skillinfra"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *Config
	Clock  kernel.Clock

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	Queue      *resumeinfra.RedisQueue

	// Services
	TokenService  auth.TokenService
	ResumeService *resumesrv.Service

	// Handlers & workers
	ResumeHandlers *resumeapi.ResumeHandlers
	ResumeWorker   *worker.ResumeWorker
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *Config) *Container {
	c := &Container{
		Config: cfg,
		Clock:  kernel.SystemClock(),
	}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	cfg := c.Config

	// 1. Database Connection
	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Pass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. Document storage
	switch cfg.Documents.Storage {
	case "s3":
		awsCfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(cfg.AWS.Region))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		if cfg.AWS.Bucket == "" {
			logx.Fatalf("AWS_BUCKET is required when DOCUMENT_STORAGE=s3")
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), cfg.AWS.Bucket, "")
		logx.Infof("Reading resumes from s3://%s", cfg.AWS.Bucket)
	default:
		c.FileSystem = fsxlocal.NewLocalFileSystem(cfg.Documents.Root)
		logx.Infof("Reading resumes from %s", cfg.Documents.Root)
	}

	// 4. Queue
	c.Queue = resumeinfra.NewRedisQueue(c.Redis, cfg.QueueName)

	// 5. Auth
	secret := cfg.JWT.Secret
	if secret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		secret = "super-secret-key-please-change-me-in-production"
	}
	c.TokenService = auth.NewJWTService(secret, cfg.JWT.Issuer, cfg.JWT.TTL, c.Clock)
}

func (c *Container) initServices() {
	cfg := c.Config

	// Skills
	synonyms := skill.NewSynonymTable(skill.DefaultSynonymRules()...)
	if cfg.Skills.SynonymsFile != "" {
		rules, err := skillinfra.LoadSynonymRules(cfg.Skills.SynonymsFile)
		if err != nil {
			logx.Fatalf("Failed to load skill synonyms: %v", err)
		}
		synonyms.Add(rules...)
		logx.Infof("Loaded %d extra skill synonym rules", len(rules))
	}
	catalog := skillinfra.NewCachedCatalog(skillinfra.NewPostgresCatalog(c.DB), c.Redis, cfg.Skills.CacheTTL)
	normalizer := skill.NewNormalizer(catalog, synonyms)

	// Extraction
	locatorCfg := resumeinfra.DefaultLocatorConfig()
	if cfg.Documents.PlaceholderPath != "" {
		locatorCfg.PlaceholderPath = cfg.Documents.PlaceholderPath
	}
	locator := resumeinfra.NewFileLocator(c.FileSystem, fsxembed.NewReader(resumeinfra.Resources), locatorCfg)
	extractor := resumesrv.NewExtractor(locator, resumeparser.NewDefault(), resumeinfra.DefaultRenderers())

	// Registration
	locker := resumeinfra.NewRedisCandidateLock(c.Redis, resumeinfra.DefaultLockPrefix, cfg.LockTTL)
	registrar := resumesrv.NewRegistrar(resumeinfra.NewPostgresProfileRepository(c.DB), locker, c.Clock)

	svcCfg := resumesrv.DefaultConfig()
	svcCfg.BatchParallelism = cfg.BatchParallelism
	svcCfg.DocumentPrefix = cfg.Documents.Prefix

	c.ResumeService = resumesrv.NewService(
		resumeinfra.NewPostgresDocumentRepository(c.DB),
		candidateinfra.NewPostgresCandidateRepository(c.DB),
		jobinfra.NewPostgresJobRepository(c.DB),
		applicationinfra.NewPostgresApplicationRepository(c.DB),
		extractor,
		resumesrv.NewAssembler(normalizer),
		registrar,
		c.Queue,
		c.FileSystem,
		c.Clock,
		svcCfg,
	)

	c.ResumeHandlers = resumeapi.NewResumeHandlers(c.ResumeService, c.Clock)
	c.ResumeWorker = worker.NewResumeWorker(c.ResumeService, c.Queue, worker.Options{Workers: cfg.Workers})
}

func (c *Container) Close() {
	if err := c.Redis.Close(); err != nil {
		logx.Warnf("Failed to close Redis: %v", err)
	}
	if err := c.DB.Close(); err != nil {
		logx.Warnf("Failed to close database: %v", err)
	}
}
