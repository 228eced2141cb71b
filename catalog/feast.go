package catalog

import (
	"context"
	"fmt"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	"github.com/feast-dev/feast/sdk/go/protos/feast/types"

	"github.com/rushteam/hybrec/core"
)

// Feast 特征视图里的列名，与 FeatureRecord 一一对应。
const (
	featName        = "name"
	featDescription = "description"
	featCategory    = "category"
	featPrice       = "price"
	featBrand       = "brand"
	featTags        = "tags"
)

// FeastLoader 从 Feast Feature Server 在线拉取物品特征。
// 目录由特征平台维护时使用，配合 Refresh 做周期性同步。
type FeastLoader struct {
	client  *feastsdk.GrpcClient
	project string

	// ItemIDs 是要同步的物品实体列表（Feast 在线接口按实体查询，
	// 没有全量扫描，物品清单需要调用方提供）
	ItemIDs []string

	// FeatureView 特征视图名，默认 item_features
	FeatureView string

	// EntityKey 实体键名，默认 item_id
	EntityKey string
}

// NewFeastLoader 建立到 Feast Feature Server 的 gRPC 连接。
func NewFeastLoader(host string, port int, project string) (*FeastLoader, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("catalog: connect feast %s:%d: %w", host, port, err)
	}
	return &FeastLoader{
		client:      client,
		project:     project,
		FeatureView: "item_features",
		EntityKey:   "item_id",
	}, nil
}

func (l *FeastLoader) ref(feat string) string {
	return l.FeatureView + ":" + feat
}

// Load 按 ItemIDs 批量拉取在线特征并转成目录记录。
// 某个物品的特征行缺失时跳过该物品，不整体失败。
func (l *FeastLoader) Load(ctx context.Context) ([]core.FeatureRecord, error) {
	if len(l.ItemIDs) == 0 {
		return nil, nil
	}

	entities := make([]feastsdk.Row, len(l.ItemIDs))
	for i, id := range l.ItemIDs {
		entities[i] = feastsdk.Row{l.EntityKey: feastsdk.StrVal(id)}
	}

	req := &feastsdk.OnlineFeaturesRequest{
		Features: []string{
			l.ref(featName),
			l.ref(featDescription),
			l.ref(featCategory),
			l.ref(featPrice),
			l.ref(featBrand),
			l.ref(featTags),
		},
		Entities: entities,
		Project:  l.project,
	}

	resp, err := l.client.GetOnlineFeatures(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("catalog: feast online features: %w", err)
	}

	rows := resp.Rows()
	records := make([]core.FeatureRecord, 0, len(rows))
	for i, row := range rows {
		if i >= len(l.ItemIDs) {
			break
		}
		rec := core.FeatureRecord{
			ItemID:      l.ItemIDs[i],
			Name:        stringVal(row[l.ref(featName)]),
			Description: stringVal(row[l.ref(featDescription)]),
			Category:    stringVal(row[l.ref(featCategory)]),
			Price:       floatVal(row[l.ref(featPrice)]),
			Brand:       stringVal(row[l.ref(featBrand)]),
			Tags:        stringListVal(row[l.ref(featTags)]),
		}
		if rec.Name == "" && rec.Category == "" && rec.Brand == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func stringVal(v *types.Value) string {
	if v == nil {
		return ""
	}
	return v.GetStringVal()
}

func floatVal(v *types.Value) float64 {
	if v == nil {
		return 0
	}
	switch val := v.GetVal().(type) {
	case *types.Value_DoubleVal:
		return val.DoubleVal
	case *types.Value_FloatVal:
		return float64(val.FloatVal)
	case *types.Value_Int64Val:
		return float64(val.Int64Val)
	case *types.Value_Int32Val:
		return float64(val.Int32Val)
	default:
		return 0
	}
}

func stringListVal(v *types.Value) []string {
	if v == nil {
		return nil
	}
	return v.GetStringListVal().GetVal()
}

var _ Loader = (*FeastLoader)(nil)
