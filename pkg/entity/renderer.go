package entity

// Renderer draws descriptors onto some output.
type Renderer interface {
	RenderTank(tank *Tank)
	RenderBullet(bullet *Bullet)
	RenderPowerup(powerup *Powerup)
	RenderTiles(region *TileRegion)
}
