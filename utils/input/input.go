package input

import (
	"context"
	"os"
	"path/filepath"

	"git.fiblab.net/general/common/v2/mongoutil"
	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/yaml.v2"

	"github.com/tsinghua-fib-lab/platoon-merge-go/utils/config"
)

// Input 输入数据
// 功能：存储场景运行所需的输入数据
// 说明：支持从文件或MongoDB加载，MongoDB来源支持本地缓存
type Input struct {
	Scenario *config.Scenario
}

// scenarioDoc MongoDB中的场景文档结构
// 说明：场景以YAML文本整体存储在data字段中，保持与文件来源相同的格式
type scenarioDoc struct {
	Data string `bson:"data"`
}

// Init 加载输入数据
// 功能：根据配置加载场景数据
// 参数：c-配置对象，cacheDir-缓存目录（为空则禁用缓存）
// 返回：加载完成的输入数据指针
// 算法说明：
// 1. 缓存检查：验证缓存目录的有效性
// 2. 文件来源优先：直接从YAML文件加载
// 3. MongoDB来源：先试图从本地缓存加载；未命中则连接数据库取场景文档，
//    成功后写入缓存（写失败仅告警，不影响加载）
// 4. 两种来源都未配置时视为配置缺陷
func Init(c config.Config, cacheDir string) *Input {
	useCache := preCheckCache(cacheDir)
	if !useCache {
		cacheDir = ""
	}

	res := &Input{Scenario: &config.Scenario{}}

	if c.Input.Scenario.File != "" {
		file, err := os.ReadFile(c.Input.Scenario.File)
		if err != nil {
			log.Panicf("failed to load scenario from file: %v", err)
		}
		if err := yaml.Unmarshal(file, res.Scenario); err != nil {
			log.Panicf("failed to parse scenario file: %v", err)
		}
		return res
	}

	if c.Input.URI == "" {
		log.Panic("scenario file or MongoDB source must be specified")
	}

	cachePath := ""
	if cacheDir != "" {
		cachePath = filepath.Join(cacheDir, c.Input.Scenario.GetCachePath())
		if data, err := os.ReadFile(cachePath); err == nil {
			if err := yaml.Unmarshal(data, res.Scenario); err == nil {
				log.Infof("load scenario from cache %s", cachePath)
				return res
			}
			log.Warnf("broken cache %s, reload from MongoDB", cachePath)
		}
	}

	client := mongoutil.NewClient(c.Input.URI)
	defer client.Disconnect(context.Background())
	var doc scenarioDoc
	err := client.
		Database(c.Input.Scenario.DB).
		Collection(c.Input.Scenario.Col).
		FindOne(context.Background(), bson.D{}).
		Decode(&doc)
	if err != nil {
		log.Panicf("failed to load scenario from MongoDB: %v", err)
	}
	if err := yaml.Unmarshal([]byte(doc.Data), res.Scenario); err != nil {
		log.Panicf("failed to parse scenario document: %v", err)
	}
	if cachePath != "" {
		if err := os.WriteFile(cachePath, []byte(doc.Data), 0o644); err != nil {
			log.Warnf("failed to write cache %s: %v", cachePath, err)
		}
	}
	return res
}

// preCheckCache 预检查缓存目录
// 功能：验证输入缓存目录的有效性，决定是否启用缓存功能
// 参数：cacheDir-缓存目录路径
// 返回：true表示启用缓存，false表示禁用缓存
func preCheckCache(cacheDir string) bool {
	if cacheDir == "" {
		log.Info("disable input cache")
		return false
	} else {
		if stat, err := os.Stat(cacheDir); err == nil && stat.IsDir() {
			// 文件夹存在
			log.Infof("enable input cache at %s", cacheDir)
			return true
		} else {
			log.Errorf("disable input cache because invalid dir %s (not exist or file)", cacheDir)
			return false
		}
	}
}
