package cache

import (
	"time"
)

// TimeUntilMidnight は次の午前0時（サーバーのローカル時刻）までの期間を返します。
// 誕生日ウィンドウは日付が変わると移動するため、キャッシュの既定の有効期限として使用します。
func TimeUntilMidnight() time.Duration {
	now := time.Now()

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)

	return midnight.Sub(now)
}
